package service

import "strconv"

func onOff(v bool) string {
	if v {
		return "вкл"
	}
	return "выкл"
}

// fmtPrice — цена без экспоненты и без хвостовых нулей: KRW-суммы
// большие, %v уводит их в 3.45e+07.
func fmtPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
