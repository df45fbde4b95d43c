package patient

import (
	"math"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOthers Gender = "others"
)

// Patient is a stored patient record. Height is meters, weight kilograms.
type Patient struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Age          int       `json:"age"`
	Gender       Gender    `json:"gender"`
	Height       float64   `json:"height"`
	Weight       float64   `json:"weight"`
	Diagnosis    *string   `json:"diagnosis"`
	Prescription *string   `json:"prescription"`
	CreatedAt    time.Time `json:"created_at"`
}

// BMI returns weight / height², rounded to two decimal places. It is never
// stored: recomputing on every read keeps it consistent with the current
// height and weight.
func (p *Patient) BMI() float64 {
	return math.Round(p.Weight/(p.Height*p.Height)*100) / 100
}

// Verdict classifies the BMI. Boundary values belong to the upper bracket.
func (p *Patient) Verdict() string {
	bmi := p.BMI()
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// Response is the serialized form of a record, carrying the derived fields
// alongside the stored ones.
type Response struct {
	Patient
	BMI     float64 `json:"bmi"`
	Verdict string  `json:"verdict"`
}

func (p *Patient) Render() Response {
	return Response{Patient: *p, BMI: p.BMI(), Verdict: p.Verdict()}
}
