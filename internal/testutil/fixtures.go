package testutil

import (
	"fmt"
	"strings"
)

// NumberedCSV returns a CSV document with an "id,value" header and n rows.
func NumberedCSV(n int) []byte {
	var b strings.Builder
	b.WriteString("id,value\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d,%d\n", i, i*10)
	}
	return []byte(b.String())
}

// DatedCSV returns a CSV document whose "date" column is out of order.
func DatedCSV() []byte {
	return []byte("date,sales\n" +
		"2024-01-03,30\n" +
		"2024-01-01,10\n" +
		"2024-01-02,20\n")
}
