package helpers

import (
	"math/big"
	"testing"
)

func TestShortenAddr(t *testing.T) {
	got := ShortenAddr("0x376343F54fC19fCC383Af473e9Cd2d39Fd5cd0C7")
	want := "0x3763…d0C7"
	if got != want {
		t.Errorf("ShortenAddr: got %q, want %q", got, want)
	}
	if got := ShortenAddr("0xabc"); got != "0xabc" {
		t.Errorf("short input should pass through, got %q", got)
	}
}

func TestIsValidEthAddress(t *testing.T) {
	if !IsValidEthAddress("0x376343F54fC19fCC383Af473e9Cd2d39Fd5cd0C7") {
		t.Error("expected valid address")
	}
	for _, bad := range []string{"", "0x123", "376343F54fC19fCC383Af473e9Cd2d39Fd5cd0C7", "0xZZ6343F54fC19fCC383Af473e9Cd2d39Fd5cd0C7"} {
		if IsValidEthAddress(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"edu", "a", "my-name", "web3"}
	for _, s := range valid {
		if !IsValidName(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "Edu", "has space", "-lead", "trail-", "dot.com", "waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong"}
	for _, s := range invalid {
		if IsValidName(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestFormatETH(t *testing.T) {
	fee := big.NewInt(10_000_000_000_000_000)
	if got := FormatETH(fee, "EDU"); got != "0.01 EDU" {
		t.Errorf("FormatETH: got %q", got)
	}
	if got := FormatETH(nil, "EDU"); got != "0 EDU" {
		t.Errorf("FormatETH(nil): got %q", got)
	}
	if got := FormatETH(big.NewInt(0), "ETH"); got != "0 ETH" {
		t.Errorf("FormatETH(0): got %q", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"edu", "zo"}, "EDU") {
		t.Error("Contains should be case-insensitive")
	}
	if Contains([]string{"edu"}, "zo") {
		t.Error("unexpected match")
	}
}
