package session

import "github.com/vegasq/tablemerge/merge"

// Status is a snapshot of a session for display.
type Status struct {
	ID              string   `json:"id" yaml:"id"`
	PrimaryLoaded   bool     `json:"primary_loaded" yaml:"primary_loaded"`
	SecondaryLoaded bool     `json:"secondary_loaded" yaml:"secondary_loaded"`
	PrimaryName     string   `json:"primary_name,omitempty" yaml:"primary_name,omitempty"`
	SecondaryName   string   `json:"secondary_name,omitempty" yaml:"secondary_name,omitempty"`
	PrimaryRows     int      `json:"primary_rows" yaml:"primary_rows"`
	SecondaryRows   int      `json:"secondary_rows" yaml:"secondary_rows"`
	Columns         []string `json:"columns" yaml:"columns"`
	Key             string   `json:"key,omitempty" yaml:"key,omitempty"`
	Ready           bool     `json:"ready" yaml:"ready"`

	EmptyKeys merge.EmptyKeyPolicy `json:"empty_keys" yaml:"empty_keys"`

	HasResult       bool     `json:"has_result" yaml:"has_result"`
}

// Status returns a snapshot of the session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		ID:        s.id,
		Columns:   append([]string{}, s.columns...),
		Key:       s.key,
		Ready:     s.ready(),
		HasResult: s.result != nil,
		EmptyKeys: s.engine.Policy(),
	}
	if s.primary != nil {
		st.PrimaryLoaded = true
		st.PrimaryName = s.primary.Name
		st.PrimaryRows = s.primary.Len()
	}
	if s.secondary != nil {
		st.SecondaryLoaded = true
		st.SecondaryName = s.secondary.Name
		st.SecondaryRows = s.secondary.Len()
	}
	return st
}
