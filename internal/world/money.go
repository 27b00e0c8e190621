package world

// MaxMoney bounds every balance in both directions.
const MaxMoney int64 = 9_999_999_999_999

// AddMoney applies delta to balance, pinned to ±MaxMoney.
func AddMoney(balance int64, delta float64) int64 {
	sum := float64(balance) + delta
	switch {
	case sum != sum: // NaN
		return balance
	case sum >= float64(MaxMoney):
		return MaxMoney
	case sum <= -float64(MaxMoney):
		return -MaxMoney
	}
	return int64(sum)
}
