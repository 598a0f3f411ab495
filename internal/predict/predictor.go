package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"bidwise/internal/model"
)

// ErrModelUnavailable marks a scorer failure: a missing or malformed model
// artifact. Callers decide whether to fall back to the baseline strategy;
// nothing in this package substitutes a default score.
var ErrModelUnavailable = errors.New("model artifact unavailable")

// Scores is the per-impression prediction pair, each in [0, 1].
type Scores struct {
	PClick float64 `json:"p_click"`
	PConv  float64 `json:"p_conv"`
}

// Artifact file names inside the model directory.
const (
	CTRModelFile = "ctr_model.json"
	CVRModelFile = "cvr_model.json"
)

// Feature order the models were trained on. featureVector must match it.
var featureNames = []string{"campaign_id", "hour", "device_type", "floor_price", "market_price"}

// logisticModel is a serialized logistic regression:
// p = sigmoid(intercept + coefficients . features).
type logisticModel struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (m logisticModel) predict(imp model.Impression) float64 {
	v := featureVector(imp)
	z := m.Intercept
	for i, c := range m.Coefficients {
		z += c * v[i]
	}
	return 1 / (1 + math.Exp(-z))
}

func featureVector(imp model.Impression) []float64 {
	return []float64{
		float64(imp.CampaignID),
		float64(imp.Hour),
		float64(imp.Device.Code()),
		imp.FloorPrice,
		imp.MarketPrice,
	}
}

// Predictor scores impressions with the trained CTR and CVR models.
type Predictor struct {
	ctr logisticModel
	cvr logisticModel
}

// Load reads both model artifacts from dir. Any missing or malformed
// artifact yields ErrModelUnavailable.
func Load(dir string) (*Predictor, error) {
	ctr, err := loadModel(filepath.Join(dir, CTRModelFile))
	if err != nil {
		return nil, err
	}
	cvr, err := loadModel(filepath.Join(dir, CVRModelFile))
	if err != nil {
		return nil, err
	}
	return &Predictor{ctr: ctr, cvr: cvr}, nil
}

func loadModel(path string) (logisticModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return logisticModel{}, fmt.Errorf("%w: %s: %v", ErrModelUnavailable, path, err)
	}
	var m logisticModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return logisticModel{}, fmt.Errorf("%w: %s: %v", ErrModelUnavailable, path, err)
	}
	if len(m.Coefficients) != len(featureNames) {
		return logisticModel{}, fmt.Errorf("%w: %s: expected %d coefficients, got %d",
			ErrModelUnavailable, path, len(featureNames), len(m.Coefficients))
	}
	if len(m.Features) == 0 {
		m.Features = featureNames
	}
	if len(m.Features) != len(m.Coefficients) {
		return logisticModel{}, fmt.Errorf("%w: %s: feature/coefficient length mismatch",
			ErrModelUnavailable, path)
	}
	return m, nil
}

// Score predicts click and conversion probabilities for one impression.
func (p *Predictor) Score(imp model.Impression) Scores {
	return Scores{PClick: p.ctr.predict(imp), PConv: p.cvr.predict(imp)}
}

// ScoreAll batch-scores a stream in order. The output is index-aligned with
// imps, so callers can pair scores with impressions positionally.
func (p *Predictor) ScoreAll(imps []model.Impression) ([]Scores, error) {
	out := make([]Scores, len(imps))
	for i, imp := range imps {
		out[i] = p.Score(imp)
	}
	return out, nil
}

// FeatureImportance is one entry of the model-derived importance ranking.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// FeatureImportance ranks the CTR model's features by absolute coefficient,
// descending.
func (p *Predictor) FeatureImportance() []FeatureImportance {
	out := make([]FeatureImportance, len(p.ctr.Features))
	for i, f := range p.ctr.Features {
		out[i] = FeatureImportance{Feature: f, Importance: math.Abs(p.ctr.Coefficients[i])}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	return out
}

// Confidence summarizes prediction certainty: the mean of max(p, 1-p) over a
// sample of impressions.
type Confidence struct {
	AvgCTRConfidence float64 `json:"avg_ctr_confidence"`
	AvgCVRConfidence float64 `json:"avg_cvr_confidence"`
}

const confidenceSample = 1000

func (p *Predictor) Confidence(imps []model.Impression) Confidence {
	if len(imps) == 0 {
		return Confidence{}
	}
	n := len(imps)
	if n > confidenceSample {
		n = confidenceSample
	}
	var ctrSum, cvrSum float64
	for _, imp := range imps[:n] {
		s := p.Score(imp)
		ctrSum += math.Max(s.PClick, 1-s.PClick)
		cvrSum += math.Max(s.PConv, 1-s.PConv)
	}
	return Confidence{
		AvgCTRConfidence: ctrSum / float64(n),
		AvgCVRConfidence: cvrSum / float64(n),
	}
}
