package prediction

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

var ErrInvalidInput = errors.New("invalid health metrics")

// Disclaimer accompanies every risk assessment.
const Disclaimer = "This is a prediction tool. Consult healthcare professionals for medical advice."

// Kind names the assessed condition.
type Kind string

const (
	KindDiabetes Kind = "diabetes"
	KindHeart    Kind = "heart"
)

// Risk is the coarse risk bucket shown to the user.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Result is a completed risk assessment.
type Result struct {
	Type            Kind     `json:"type"`
	Risk            Risk     `json:"risk"`
	Confidence      int      `json:"confidence"`
	Recommendations []string `json:"recommendations"`
	Disclaimer      string   `json:"disclaimer"`
}

// DiabetesInput mirrors the diabetes assessment form.
type DiabetesInput struct {
	Age           int     `json:"age"`
	BMI           float64 `json:"bmi"`
	Glucose       float64 `json:"glucose"`
	BloodPressure float64 `json:"bloodPressure"`
	FamilyHistory string  `json:"familyHistory"`
}

// HeartInput mirrors the heart disease assessment form.
type HeartInput struct {
	Age           int     `json:"age"`
	Cholesterol   float64 `json:"cholesterol"`
	SystolicBP    float64 `json:"systolicBp"`
	MaxHeartRate  float64 `json:"maxHeartRate"`
	ChestPainType string  `json:"chestPainType"`
}

// Rand is the random source used for the placeholder scoring.
type Rand interface {
	Float64() float64
}

type profile struct {
	kind            Kind
	highAbove       float64
	mediumAbove     float64
	minConfidence   float64
	recommendations []string
}

var (
	diabetesProfile = profile{
		kind:          KindDiabetes,
		highAbove:     0.6,
		mediumAbove:   0.3,
		minConfidence: 0.7,
		recommendations: []string{
			"Regular blood sugar monitoring",
			"Maintain healthy diet",
			"Regular exercise routine",
			"Annual health checkups",
		},
	}
	heartProfile = profile{
		kind:          KindHeart,
		highAbove:     0.5,
		mediumAbove:   0.25,
		minConfidence: 0.75,
		recommendations: []string{
			"Regular cardiovascular exercise",
			"Monitor blood pressure",
			"Reduce sodium intake",
			"Manage stress levels",
		},
	}
)

var (
	familyHistoryOptions = []string{"", "none", "parent", "sibling", "both"}
	chestPainOptions     = []string{"", "none", "typical", "atypical", "non-anginal"}
)

// Service produces placeholder risk assessments. No model is involved: the
// score is drawn from the random source once the inputs pass validation.
type Service struct {
	mu  sync.Mutex
	rng Rand
}

// NewService builds the service. A nil rng uses an unseeded source.
func NewService(rng Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Service{rng: rng}
}

// PredictDiabetes validates in and returns a diabetes risk assessment.
func (s *Service) PredictDiabetes(in DiabetesInput) (Result, error) {
	if err := validate(
		positive("age", float64(in.Age)),
		positive("bmi", in.BMI),
		positive("glucose", in.Glucose),
		positive("bloodPressure", in.BloodPressure),
		oneOf("familyHistory", in.FamilyHistory, familyHistoryOptions),
	); err != nil {
		return Result{}, err
	}
	return s.assess(diabetesProfile), nil
}

// PredictHeart validates in and returns a heart disease risk assessment.
func (s *Service) PredictHeart(in HeartInput) (Result, error) {
	if err := validate(
		positive("age", float64(in.Age)),
		positive("cholesterol", in.Cholesterol),
		positive("systolicBp", in.SystolicBP),
		positive("maxHeartRate", in.MaxHeartRate),
		oneOf("chestPainType", in.ChestPainType, chestPainOptions),
	); err != nil {
		return Result{}, err
	}
	return s.assess(heartProfile), nil
}

func (s *Service) assess(p profile) Result {
	s.mu.Lock()
	score := s.rng.Float64()
	confidence := p.minConfidence + s.rng.Float64()*(1-p.minConfidence)
	s.mu.Unlock()

	risk := RiskLow
	switch {
	case score > p.highAbove:
		risk = RiskHigh
	case score > p.mediumAbove:
		risk = RiskMedium
	}

	return Result{
		Type:            p.kind,
		Risk:            risk,
		Confidence:      int(math.Round(confidence * 100)),
		Recommendations: append([]string(nil), p.recommendations...),
		Disclaimer:      Disclaimer,
	}
}

func positive(field string, value float64) error {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be a positive number", ErrInvalidInput, field)
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	for _, option := range allowed {
		if value == option {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidInput, field, value)
}

func validate(errs ...error) error {
	return errors.Join(errs...)
}
