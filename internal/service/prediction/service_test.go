package prediction

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// sequence returns the queued values in order, repeating the last one.
type sequence struct {
	values []float64
	next   int
}

func (s *sequence) Float64() float64 {
	v := s.values[min(s.next, len(s.values)-1)]
	s.next++
	return v
}

func validDiabetes() DiabetesInput {
	return DiabetesInput{Age: 35, BMI: 25.5, Glucose: 120, BloodPressure: 80, FamilyHistory: "parent"}
}

func validHeart() HeartInput {
	return HeartInput{Age: 45, Cholesterol: 200, SystolicBP: 120, MaxHeartRate: 150, ChestPainType: "typical"}
}

func TestDiabetesRiskThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Risk
	}{
		{0.1, RiskLow},
		{0.3, RiskLow},
		{0.31, RiskMedium},
		{0.6, RiskMedium},
		{0.61, RiskHigh},
	}

	for _, tc := range cases {
		svc := NewService(&sequence{values: []float64{tc.score, 0}})
		result, err := svc.PredictDiabetes(validDiabetes())
		require.NoError(t, err)
		require.Equal(t, tc.want, result.Risk, "score %v", tc.score)
		require.Equal(t, 70, result.Confidence)
		require.Equal(t, KindDiabetes, result.Type)
	}
}

func TestHeartRiskThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Risk
	}{
		{0.25, RiskLow},
		{0.26, RiskMedium},
		{0.5, RiskMedium},
		{0.51, RiskHigh},
	}

	for _, tc := range cases {
		svc := NewService(&sequence{values: []float64{tc.score, 1}})
		result, err := svc.PredictHeart(validHeart())
		require.NoError(t, err)
		require.Equal(t, tc.want, result.Risk, "score %v", tc.score)
		require.Equal(t, 100, result.Confidence)
		require.Len(t, result.Recommendations, 4)
		require.Equal(t, Disclaimer, result.Disclaimer)
	}
}

func TestConfidenceStaysInRange(t *testing.T) {
	svc := NewService(rand.New(rand.NewPCG(9, 9)))
	for range 200 {
		d, err := svc.PredictDiabetes(validDiabetes())
		require.NoError(t, err)
		require.GreaterOrEqual(t, d.Confidence, 70)
		require.LessOrEqual(t, d.Confidence, 100)

		h, err := svc.PredictHeart(validHeart())
		require.NoError(t, err)
		require.GreaterOrEqual(t, h.Confidence, 75)
		require.LessOrEqual(t, h.Confidence, 100)
	}
}

func TestValidationRejectsMissingMetrics(t *testing.T) {
	svc := NewService(nil)

	in := validDiabetes()
	in.Glucose = 0
	_, err := svc.PredictDiabetes(in)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "glucose")

	heart := validHeart()
	heart.Age = -1
	heart.ChestPainType = "sharp"
	_, err = svc.PredictHeart(heart)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "age")
	require.Contains(t, err.Error(), "chestPainType")
}
