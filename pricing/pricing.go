// Package pricing formats rupee amounts the way the storefront shows them.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Format renders amount as whole rupees with Indian digit grouping,
// e.g. 123456.4 -> "₹1,23,456".
func Format(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "₹" + group(strconv.FormatInt(n, 10))
}

// Discount is the percentage saved going from original to discounted,
// rounded half up. A zero original price has no discount.
func Discount(original, discounted float64) int {
	if original == 0 {
		return 0
	}
	return int(math.Floor((original-discounted)/original*100 + 0.5))
}

// group inserts separators after the last three digits and then every two.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
