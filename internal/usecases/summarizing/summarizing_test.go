package summarizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFulfillmentBranches(t *testing.T) {
	tests := []struct {
		name string
		cz   float64
		sk   float64
		want string
	}{
		{name: "both markets over plan", cz: 105, sk: 100, want: "Vynikajúci mesiac"},
		{name: "both markets close to plan", cz: 95, sk: 92, want: "Dobrý mesiac"},
		{name: "one market over 70", cz: 75, sk: 40, want: "Priemerný mesiac"},
		{name: "both markets under 70", cz: 50, sk: 69.9, want: "Slabý mesiac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrative := Generate(Input{Month: "2025-03", FulfillmentCZ: tt.cz, FulfillmentSK: tt.sk})
			assert.Contains(t, narrative.Sentences[0], tt.want)
		})
	}
}

func TestGenerateMonthOverMonth(t *testing.T) {
	tests := []struct {
		name   string
		change float64
		want   string
	}{
		{name: "growth above the stable band", change: 12.5, want: "vzrástli o 12.50 %"},
		{name: "decline below the stable band", change: -8, want: "klesli o 8.00 %"},
		{name: "inside the stable band", change: 4.9, want: "stabilné"},
		{name: "negative inside the stable band", change: -5, want: "stabilné"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrative := Generate(Input{HasPreviousMonth: true, MoMChangePercent: tt.change})
			assert.Contains(t, narrative.Text, tt.want)
		})
	}
}

func TestGenerateSkipsMoMWithoutPreviousMonth(t *testing.T) {
	narrative := Generate(Input{})

	for _, sentence := range narrative.Sentences {
		assert.NotContains(t, sentence, "medzimesačne")
	}
}

func TestGenerateChannelMix(t *testing.T) {
	b2b := Generate(Input{B2BShare: 75, EshopShare: 25})
	assert.Contains(t, b2b.Text, "dominoval B2B kanál")

	eshop := Generate(Input{B2BShare: 30, EshopShare: 70})
	assert.Contains(t, eshop.Text, "dominovali e-shopy")

	balanced := Generate(Input{B2BShare: 55, EshopShare: 45})
	assert.Contains(t, balanced.Text, "rovnomerne rozložené")

	// 60 % exactly is not dominant, the threshold is strict.
	boundary := Generate(Input{B2BShare: 60, EshopShare: 40})
	assert.Contains(t, boundary.Text, "rovnomerne rozložené")
}

func TestGenerateCustomerConcentration(t *testing.T) {
	concentrated := Generate(Input{TopCustomer: "Decathlon", TopCustomerShare: 42})
	assert.Contains(t, concentrated.Text, "koncentráciu")
	assert.Contains(t, concentrated.Text, "Decathlon")

	spread := Generate(Input{TopCustomer: "Decathlon", TopCustomerShare: 30})
	assert.NotContains(t, spread.Text, "koncentráciu")
}

func TestGeneratePaymentDiscipline(t *testing.T) {
	assert.Contains(t, Generate(Input{PaymentRate: 95}).Text, "výborná")
	assert.Contains(t, Generate(Input{PaymentRate: 90}).Text, "výborná")
	assert.Contains(t, Generate(Input{PaymentRate: 75}).Text, "priemerná")
	assert.Contains(t, Generate(Input{PaymentRate: 50}).Text, "slabá")
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := Input{
		Month:               "2025-03",
		FulfillmentCZ:       95,
		FulfillmentSK:       101,
		HasPreviousMonth:    true,
		MoMChangePercent:    7,
		B2BShare:            65,
		EshopShare:          35,
		TopBrand:            "ENERVIT",
		TopBrandShare:       48.2,
		TopSalesperson:      "Karolina",
		TopSalespersonShare: 40,
		TopCustomer:         "Sportisimo",
		TopCustomerShare:    35,
		PaymentRate:         88,
	}

	first := Generate(in)
	second := Generate(in)

	assert.Equal(t, first, second)
	assert.Equal(t, "2025-03", first.Month)
	assert.NotEmpty(t, first.Text)
}
