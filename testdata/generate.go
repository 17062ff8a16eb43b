// Generates sample inputs for trying tablemerge by hand:
//
//	cd testdata && go run generate.go
//	tablemerge merge customers.csv orders.xlsx --key customer_id
//	tablemerge merge customers.csv payments.parquet
package main

import (
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type Payment struct {
	CustomerID int64   `parquet:"customer_id"`
	Method     string  `parquet:"method"`
	Amount     float64 `parquet:"amount"`
	Settled    bool    `parquet:"settled"`
}

const customersCSV = `customer_id,name,email,city
1,alice,alice@example.com,Lisbon
2,bob,bob@example.com,Oslo
3,charlie,charlie@example.com,Lima
4,diana,,Kyiv
 5 ,eve,eve@example.com,Quito
6,frank,frank@example.com,
`

func main() {
	if err := os.WriteFile("customers.csv", []byte(customersCSV), 0o644); err != nil {
		log.Fatal().Err(err).Msg("failed to write customers.csv")
	}

	writeOrders()
	writePayments()

	log.Info().Msg("generated customers.csv, orders.xlsx and payments.parquet")
}

// writeOrders writes a workbook with numeric keys, a duplicate key and a
// second sheet that tablemerge ignores.
func writeOrders() {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	rows := [][]interface{}{
		{"customer_id", "order_id", "total", "city"},
		{1, "A-100", 120.5, "Porto"},
		{3, "A-101", 15, "Lima"},
		{3, "A-102", 99.99, "Cusco"},
		{5, "A-103", 42, "Quito"},
		{9, "A-104", 7.25, "Rome"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			log.Fatal().Err(err).Msg("failed to write orders row")
		}
	}

	if _, err := f.NewSheet("Notes"); err != nil {
		log.Fatal().Err(err).Send()
	}
	if err := f.SetCellValue("Notes", "A1", "only the first sheet is read"); err != nil {
		log.Fatal().Err(err).Send()
	}

	if err := f.SaveAs("orders.xlsx"); err != nil {
		log.Fatal().Err(err).Msg("failed to save orders.xlsx")
	}
}

func writePayments() {
	payments := []Payment{
		{CustomerID: 2, Method: "card", Amount: 30, Settled: true},
		{CustomerID: 4, Method: "transfer", Amount: 250.75, Settled: false},
		{CustomerID: 6, Method: "card", Amount: 12.4, Settled: true},
	}

	file, err := os.Create("payments.parquet")
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Payment](file)
	if _, err := writer.Write(payments); err != nil {
		log.Fatal().Err(err).Msg("failed to write payments")
	}
	if err := writer.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close parquet writer")
	}
}
