package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeSeats(t *testing.T) {
	got := NormalizeSeats([]string{" u1a ", "", "U2B", "l3c "})
	want := []string{"U1A", "U2B", "L3C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeSeats = %v, want %v", got, want)
	}
}

func TestHasDuplicates(t *testing.T) {
	if !HasDuplicates([]string{"U1A", "u1a"}) {
		t.Fatalf("duplikat beda kapital harus terdeteksi")
	}
	if HasDuplicates([]string{"U1A", "U1B"}) {
		t.Fatalf("tidak ada duplikat")
	}
}

func TestValidHHMM(t *testing.T) {
	for _, ok := range []string{"08:00", "23:59", " 07:30 "} {
		if !ValidHHMM(ok) {
			t.Fatalf("%q harus valid", ok)
		}
	}
	for _, bad := range []string{"24:00", "8am", ""} {
		if ValidHHMM(bad) {
			t.Fatalf("%q harus invalid", bad)
		}
	}
}

func TestAmountsEqual(t *testing.T) {
	if !AmountsEqual(300000, 300000.004) {
		t.Fatalf("selisih di bawah satu sen harus dianggap sama")
	}
	if AmountsEqual(300000, 300000.02) {
		t.Fatalf("selisih di atas satu sen harus beda")
	}
}
