// Package summarizing generates the executive summary text of the dashboard.
// It is a fixed decision tree over precomputed ratios, no randomness: the same
// figures always produce the same sentences.
package summarizing

import (
	"fmt"
	"strings"

	"github.com/vitarsport/sales-analytics-api/pkg/utils"
)

// Threshold branches of the decision tree.
const (
	fulfillmentExcellent = 100.0
	fulfillmentGood      = 90.0
	fulfillmentModerate  = 70.0

	momStableBand = 5.0

	channelDominantShare = 60.0

	customerConcentration = 30.0

	paymentRateGood     = 90.0
	paymentRateModerate = 70.0
)

// Input carries the precomputed ratios the decision tree branches on. Shares
// and rates are percentages in [0, 100]; fulfillment can exceed 100.
type Input struct {
	Month string

	FulfillmentCZ float64
	FulfillmentSK float64

	// Month-over-month revenue change, valid only when HasPreviousMonth.
	MoMChangePercent float64
	HasPreviousMonth bool

	B2BShare   float64
	EshopShare float64

	TopBrand      string
	TopBrandShare float64

	TopSalesperson      string
	TopSalespersonShare float64

	TopCustomer      string
	TopCustomerShare float64

	PaymentRate float64
}

// Narrative is the generated summary, one sentence per entry in reading
// order.
type Narrative struct {
	Month     string   `json:"month"`
	Sentences []string `json:"sentences"`
	Text      string   `json:"text"`
}

// Generate walks the decision tree and assembles the Slovak summary.
func Generate(in Input) Narrative {
	sentences := []string{
		fulfillmentSentence(in),
	}

	if in.HasPreviousMonth {
		sentences = append(sentences, momSentence(in.MoMChangePercent))
	}

	sentences = append(sentences, channelMixSentence(in))

	if in.TopBrand != "" {
		sentences = append(sentences, fmt.Sprintf(
			"Najsilnejšou značkou bola %s s podielom %.1f %% na tržbách.",
			in.TopBrand, in.TopBrandShare,
		))
	}

	if in.TopSalesperson != "" {
		sentences = append(sentences, fmt.Sprintf(
			"Najvyšší B2B obrat dosiahol obchodník %s (%.1f %% tímu).",
			in.TopSalesperson, in.TopSalespersonShare,
		))
	}

	if in.TopCustomer != "" && in.TopCustomerShare > customerConcentration {
		sentences = append(sentences, fmt.Sprintf(
			"Pozor na koncentráciu: zákazník %s tvorí %.1f %% tržieb.",
			in.TopCustomer, in.TopCustomerShare,
		))
	}

	sentences = append(sentences, paymentSentence(in.PaymentRate))

	return Narrative{
		Month:     in.Month,
		Sentences: sentences,
		Text:      strings.Join(sentences, " "),
	}
}

func fulfillmentSentence(in Input) string {
	cz := utils.RoundWithTwoDecimalPlace(in.FulfillmentCZ)
	sk := utils.RoundWithTwoDecimalPlace(in.FulfillmentSK)

	switch {
	case in.FulfillmentCZ >= fulfillmentExcellent && in.FulfillmentSK >= fulfillmentExcellent:
		return fmt.Sprintf("Vynikajúci mesiac: plán bol prekročený na oboch trhoch (CZ %.2f %%, SK %.2f %%).", cz, sk)
	case in.FulfillmentCZ >= fulfillmentGood && in.FulfillmentSK >= fulfillmentGood:
		return fmt.Sprintf("Dobrý mesiac: plnenie plánu sa blíži cieľu (CZ %.2f %%, SK %.2f %%).", cz, sk)
	case in.FulfillmentCZ >= fulfillmentModerate || in.FulfillmentSK >= fulfillmentModerate:
		return fmt.Sprintf("Priemerný mesiac: plán sa plní len čiastočne (CZ %.2f %%, SK %.2f %%).", cz, sk)
	default:
		return fmt.Sprintf("Slabý mesiac: plnenie plánu výrazne zaostáva (CZ %.2f %%, SK %.2f %%).", cz, sk)
	}
}

func momSentence(change float64) string {
	rounded := utils.RoundWithTwoDecimalPlace(change)

	switch {
	case change > momStableBand:
		return fmt.Sprintf("Tržby medzimesačne vzrástli o %.2f %%.", rounded)
	case change < -momStableBand:
		return fmt.Sprintf("Tržby medzimesačne klesli o %.2f %%.", -rounded)
	default:
		return "Tržby zostali medzimesačne stabilné."
	}
}

func channelMixSentence(in Input) string {
	switch {
	case in.B2BShare > channelDominantShare:
		return fmt.Sprintf("Predajom dominoval B2B kanál s podielom %.1f %%.", in.B2BShare)
	case in.EshopShare > channelDominantShare:
		return fmt.Sprintf("Predajom dominovali e-shopy s podielom %.1f %%.", in.EshopShare)
	default:
		return "Predaje boli rovnomerne rozložené medzi B2B a e-shopy."
	}
}

func paymentSentence(rate float64) string {
	rounded := utils.RoundWithTwoDecimalPlace(rate)

	switch {
	case rate >= paymentRateGood:
		return fmt.Sprintf("Platobná disciplína je výborná, uhradených je %.1f %% faktúr.", rounded)
	case rate >= paymentRateModerate:
		return fmt.Sprintf("Platobná disciplína je priemerná, uhradených je %.1f %% faktúr.", rounded)
	default:
		return fmt.Sprintf("Platobná disciplína je slabá, uhradených je len %.1f %% faktúr.", rounded)
	}
}
