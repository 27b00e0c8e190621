package world

import (
	"testing"

	"pgregory.net/rapid"
)

func TestAddMoney(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   float64
		want    int64
	}{
		{"plain", 100, 50.9, 150},
		{"negative", 100, -250, -150},
		{"pinned high", MaxMoney - 1, 10, MaxMoney},
		{"stays pinned", MaxMoney, 1e20, MaxMoney},
		{"pinned low", -MaxMoney + 1, -10, -MaxMoney},
		{"back inside", MaxMoney, -1000, MaxMoney - 1000},
		{"nan ignored", 42, nanValue(), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMoney(tt.balance, tt.delta); got != tt.want {
				t.Fatalf("AddMoney(%d, %v) = %d, want %d", tt.balance, tt.delta, got, tt.want)
			}
		})
	}
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}

func TestAddMoneyNeverLeavesBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		positive := rapid.Bool().Draw(t, "positive")
		deltas := rapid.SliceOfN(rapid.Float64Range(0, 1e15), 1, 50).Draw(t, "deltas")

		var balance int64
		for _, d := range deltas {
			if !positive {
				d = -d
			}
			balance = AddMoney(balance, d)
			if balance > MaxMoney || balance < -MaxMoney {
				t.Fatalf("balance %d out of bounds", balance)
			}
		}
	})
}
