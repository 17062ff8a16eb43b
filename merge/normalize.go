package merge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

// NormalizeKey converts a raw field value into the string used for key
// comparison. nil becomes "", numbers use their shortest decimal form, and
// surrounding whitespace is trimmed.
func NormalizeKey(v interface{}) string {
	return strings.TrimSpace(stringify(v))
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		if val == 0 {
			val = 0 // -0 prints as "-0"
		}
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		if val == 0 {
			val = 0
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// EmptyKeyPolicy decides how rows whose key normalizes to "" are matched.
type EmptyKeyPolicy string

const (
	// EmptyKeysMatch treats the empty key as an ordinary value: a primary
	// row with a blank key matches the first secondary row with a blank key.
	EmptyKeysMatch EmptyKeyPolicy = "match"

	// EmptyKeysUnmatched never matches a blank key. Such primary rows are
	// reported as unmatched.
	EmptyKeysUnmatched EmptyKeyPolicy = "unmatched"
)

// ParseEmptyKeyPolicy parses a policy name. The empty string selects EmptyKeysMatch.
func ParseEmptyKeyPolicy(s string) (EmptyKeyPolicy, error) {
	switch EmptyKeyPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", EmptyKeysMatch:
		return EmptyKeysMatch, nil
	case EmptyKeysUnmatched:
		return EmptyKeysUnmatched, nil
	default:
		return "", errors.NewConfigError("merge", fmt.Sprintf("unknown empty key policy %q (want match or unmatched)", s), nil)
	}
}

// Normalizer turns key values into comparison strings under a policy.
type Normalizer struct {
	Policy EmptyKeyPolicy

	// UnicodeNFC additionally folds keys to Unicode normalization form C,
	// so a precomposed "é" and "e" plus a combining accent compare equal.
	UnicodeNFC bool
}

// Key returns the normalized key of row and whether the row may take part
// in matching. A missing field normalizes like nil.
func (n Normalizer) Key(row dataset.Row, field string) (string, bool) {
	v, _ := row.Get(field)
	k := NormalizeKey(v)
	if n.UnicodeNFC {
		k = norm.NFC.String(k)
	}
	if k == "" && n.Policy == EmptyKeysUnmatched {
		return "", false
	}
	return k, true
}
