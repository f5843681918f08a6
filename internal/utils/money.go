package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRupee renders an integer amount with the rupee sign and Indian digit
// grouping (last three digits, then pairs): 123456 -> "₹1,23,456".
func FormatRupee(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%s", sign, formatIndian(amount))
}

// FormatRupeeASCII is FormatRupee without the currency symbol, for outputs
// restricted to cp1252 (PDF core fonts).
func FormatRupeeASCII(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRs %s", sign, formatIndian(amount))
}

func formatIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head := str[:len(str)-3]
	var out strings.Builder
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String() + "," + str[len(str)-3:]
}
