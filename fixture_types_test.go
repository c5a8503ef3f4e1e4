package fixture

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

type testAddress struct {
	Street string
	City   string
	Zip    string `fixture:"zip"`
}

type testPerson struct {
	Name    string
	Age     int
	Email   string `json:"mail"`
	Score   float64
	Active  bool
	Joined  time.Time
	Balance *big.Rat
	Wallet  money
	Address *testAddress
	Secret  string `fixture:"-"`
}

// money is an ordered decimal stored as cents.
type money struct {
	cents int64
}

func (m money) Compare(other money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

func (m money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

func parseMoney(value string) (money, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(value), ".")
	if len(frac) > 2 {
		return money{}, fmt.Errorf("too many decimals in %q", value)
	}
	frac = (frac + "00")[:2]
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return money{}, err
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return money{}, err
	}
	return money{cents: units*100 + cents}, nil
}
