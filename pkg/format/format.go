package format

import (
	"fmt"
	"strings"

	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Money renders a decimal amount with two decimal places, a digit
// separator every three integer digits and a decimal separator.
func Money(amount decimal.Decimal, separator, decimalSeparator string) string {
	return prettyString(amount.StringFixed(2), separator, decimalSeparator)
}

func PrettyNumber(number any, separator, decimalSeparator string) string {
	var numStr string

	switch n := number.(type) {
	case decimal.Decimal:
		numStr = n.StringFixed(2)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		numStr = fmt.Sprintf("%d", number)
	case float32, float64:
		numStr = fmt.Sprintf("%.2f", number)
	default:
		log.Error("PrettyNumber: unsupported type",
			zap.Any("value", number),
			zap.String("type", fmt.Sprintf("%T", number)),
		)

		return fmt.Sprint(number)
	}

	return prettyString(numStr, separator, decimalSeparator)
}

func prettyString(numStr, separator, decimalSeparator string) string {
	if separator == "" && decimalSeparator == "" {
		return numStr
	}

	if separator == decimalSeparator {
		log.Warn("prettyString: separator and decimalSeparator are the same", zap.String("value", separator))
	}

	isNegative := false
	if strings.HasPrefix(numStr, "-") {
		isNegative = true
		numStr = strings.TrimPrefix(numStr, "-")
	}

	parts := strings.Split(numStr, ".")
	integerPart := parts[0]
	decimalPart := ""
	if len(parts) == 2 {
		decimalPart = decimalSeparator + parts[1]
	}

	length := len(integerPart)

	start := length % 3
	if start == 0 {
		start = 3
	}

	var intPart strings.Builder

	if isNegative {
		intPart.WriteString("-")
	}

	intPart.WriteString(integerPart[:start])

	for i := start; i < length; i += 3 {
		intPart.WriteString(separator)
		intPart.WriteString(integerPart[i : i+3])
	}

	return intPart.String() + decimalPart
}
