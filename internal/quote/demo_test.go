package quote

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestDemoGenerateShape(t *testing.T) {
	series := NewDemoGenerator().Generate("AAPL")

	if series.Len() != demoBars {
		t.Errorf("bar count = %d, want %d", series.Len(), demoBars)
	}
	if !series.Demo {
		t.Error("demo series not flagged as demo")
	}
	if series.Symbol != "AAPL" {
		t.Errorf("symbol = %s", series.Symbol)
	}
	if series.Price != series.LastBar().Close {
		t.Errorf("price %f != last close %f", series.Price, series.LastBar().Close)
	}
	if err := series.Validate(); err != nil {
		t.Errorf("demo series failed validation: %v", err)
	}
}

func TestDemoBarsAreWellFormed(t *testing.T) {
	series := NewDemoGeneratorWithSource(rand.NewSource(7)).Generate("TEST")

	for i, b := range series.Bars {
		if b.High < b.Open || b.High < b.Close {
			t.Fatalf("bar %d: high %f below body", i, b.High)
		}
		if b.Low > b.Open || b.Low > b.Close {
			t.Fatalf("bar %d: low %f above body", i, b.Low)
		}
		if b.Volume < demoBaseVol || b.Volume > demoBaseVol+demoVolJitter {
			t.Fatalf("bar %d: volume %d outside the demo band", i, b.Volume)
		}
		if i > 0 && series.Bars[i].Open != series.Bars[i-1].Close {
			t.Fatalf("bar %d: open does not chain from the prior close", i)
		}
	}
}

func TestDemoDeterministicForFixedSeed(t *testing.T) {
	a := NewDemoGeneratorWithSource(rand.NewSource(42)).Generate("TSLA")
	b := NewDemoGeneratorWithSource(rand.NewSource(42)).Generate("TSLA")
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different series")
	}

	c := NewDemoGeneratorWithSource(rand.NewSource(43)).Generate("TSLA")
	if reflect.DeepEqual(a.Bars, c.Bars) {
		t.Error("different seeds produced identical series")
	}
}
