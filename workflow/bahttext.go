package workflow

import (
	"math"
	"strconv"
	"strings"
)

var thaiUnits = []string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}
var thaiPositions = []string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน", "ล้าน"}

// convertThaiGroup renders up to six digits. Thai numerals special-case the
// tens digit: a leading 2 becomes ยี่, a leading 1 is elided, and a trailing
// 1 after another digit becomes เอ็ด.
func convertThaiGroup(group string) string {
	var b strings.Builder
	for i := 0; i < len(group); i++ {
		digit := int(group[i] - '0')
		pos := len(group) - i - 1

		if digit == 0 {
			continue
		}
		switch {
		case pos == 1 && digit == 2:
			b.WriteString("ยี่")
		case pos == 1 && digit == 1:
			// สิบ alone, no หนึ่ง
		case pos == 0 && digit == 1 && len(group) > 1:
			b.WriteString("เอ็ด")
		default:
			b.WriteString(thaiUnits[digit])
		}
		b.WriteString(thaiPositions[pos])
	}
	return b.String()
}

// ThaiBahtText renders an amount as Thai currency-in-words (baht/satang).
// Non-finite input is treated as zero.
func ThaiBahtText(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount == 0 {
		return "ศูนย์บาทถ้วน"
	}

	abs := math.Abs(amount)
	integerPart := int64(math.Floor(abs))
	satang := int(math.Round(math.Mod(abs*100, 100)))
	satangStr := strconv.Itoa(satang)
	if len(satangStr) < 2 {
		satangStr = "0" + satangStr
	}

	var result string
	if integerPart > 0 {
		current := integerPart
		millionGroup := 0
		for current > 0 {
			group := strconv.FormatInt(current%1000000, 10)
			groupText := convertThaiGroup(group)
			if groupText != "" {
				if millionGroup > 0 {
					groupText += "ล้าน"
				}
				result = groupText + result
			}
			current /= 1000000
			millionGroup++
		}
	} else {
		result = "ศูนย์"
	}

	result += "บาท"

	tenth := int(satangStr[0] - '0')
	unit := int(satangStr[1] - '0')

	if tenth == 0 && unit == 0 {
		result += "ถ้วน"
	} else {
		var dec strings.Builder
		if tenth > 0 {
			switch tenth {
			case 2:
				dec.WriteString("ยี่")
			case 1:
				// สิบ alone
			default:
				dec.WriteString(thaiUnits[tenth])
			}
			dec.WriteString("สิบ")
		}
		if unit > 0 {
			if unit == 1 && tenth != 1 {
				dec.WriteString("เอ็ด")
			} else if unit > 1 {
				dec.WriteString(thaiUnits[unit])
			}
		}
		result += dec.String() + "สตางค์"
	}

	if amount < 0 {
		return "ลบ" + result
	}
	return result
}
