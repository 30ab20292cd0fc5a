package grpc

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
)

// inputFields maps the wire names of ProjectionInputs to their float fields.
// holdingPeriodYears is handled separately because it must be integral.
func inputFields(p *domain.ProjectionInputs) map[string]*float64 {
	return map[string]*float64{
		"incomeGrowthRate": &p.IncomeGrowthRate,
		"vacancyRate":      &p.VacancyRate,
		"opexPercent":      &p.OpexPercent,
		"exitCapRate":      &p.ExitCapRate,
		"grossRevenueBase": &p.GrossRevenueBase,
		"sponsorPromote":   &p.SponsorPromote,
		"leverageRatio":    &p.LeverageRatio,
		"debtInterestRate": &p.DebtInterestRate,
		"capRateSpread":    &p.CapRateSpread,
	}
}

const (
	holdingPeriodField = "holdingPeriodYears"

	// strictField asks Project, SimulateScenario and CalculateIRR to fail the call
	// when the IRR is not CONVERGED. It is a request option, never a projection input.
	strictField = "strict"
)

// inputsFromStruct decodes ProjectionInputs from a Struct.
// Missing keys keep the default preset value; unknown keys are rejected.
func inputsFromStruct(s *structpb.Struct) (domain.ProjectionInputs, error) {
	inputs := domain.DefaultProjectionInputs()
	if s == nil {
		return inputs, nil
	}

	fields := inputFields(&inputs)
	for key, value := range s.GetFields() {
		if key == holdingPeriodField {
			n, err := numberValue(key, value)
			if err != nil {
				return domain.ProjectionInputs{}, err
			}
			years, err := wholeNumber(key, n)
			if err != nil {
				return domain.ProjectionInputs{}, err
			}
			inputs.HoldingPeriodYears = years
			continue
		}

		target, ok := fields[key]
		if !ok {
			return domain.ProjectionInputs{}, &domain.InvalidInputError{Field: key, Reason: "is not a known input"}
		}
		n, err := numberValue(key, value)
		if err != nil {
			return domain.ProjectionInputs{}, err
		}
		*target = n
	}

	return inputs, nil
}

func inputsToStruct(p domain.ProjectionInputs) map[string]any {
	out := map[string]any{holdingPeriodField: p.HoldingPeriodYears}
	for key, v := range inputFields(&p) {
		out[key] = *v
	}
	return out
}

func numberValue(field string, v *structpb.Value) (float64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, &domain.InvalidInputError{Field: field, Reason: "must be a number"}
	}
	return n.NumberValue, nil
}

// wholeNumber converts n to an int, rejecting fractions, NaN, infinities and
// magnitudes beyond int32
func wholeNumber(field string, n float64) (int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, &domain.InvalidInputError{Field: field, Reason: "must be a whole number"}
	}
	return int(n), nil
}

// optionalInt reads a whole-number field, falling back to def when absent
func optionalInt(s *structpb.Struct, field string, def int) (int, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return def, nil
	}
	n, err := numberValue(field, v)
	if err != nil {
		return 0, err
	}
	return wholeNumber(field, n)
}

// optionalBool reads a boolean field, false when absent
func optionalBool(s *structpb.Struct, field string) (bool, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return false, nil
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, &domain.InvalidInputError{Field: field, Reason: "must be a boolean"}
	}
	return b.BoolValue, nil
}

// withoutField returns a shallow copy of s minus field
func withoutField(s *structpb.Struct, field string) *structpb.Struct {
	if _, ok := s.GetFields()[field]; !ok {
		return s
	}
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(s.GetFields()))}
	for k, v := range s.GetFields() {
		if k != field {
			out.Fields[k] = v
		}
	}
	return out
}

// requiredNumber reads a mandatory numeric field
func requiredNumber(s *structpb.Struct, field string) (float64, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return 0, &domain.InvalidInputError{Field: field, Reason: "is required"}
	}
	return numberValue(field, v)
}

// optionalNumber reads a numeric field, falling back to def when absent
func optionalNumber(s *structpb.Struct, field string, def float64) (float64, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return def, nil
	}
	return numberValue(field, v)
}

func stringField(s *structpb.Struct, field string) (string, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return "", nil
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", &domain.InvalidInputError{Field: field, Reason: "must be a string"}
	}
	return str.StringValue, nil
}

func uuidField(s *structpb.Struct, field string) (uuid.UUID, error) {
	raw, err := stringField(s, field)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.InvalidInputError{Field: field, Reason: "must be a UUID"}
	}
	return id, nil
}

func cashFlowsField(s *structpb.Struct, field string) ([]float64, error) {
	v, ok := s.GetFields()[field]
	if !ok {
		return nil, &domain.InvalidInputError{Field: field, Reason: "is required"}
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, &domain.InvalidInputError{Field: field, Reason: "must be a list of numbers"}
	}

	values := list.ListValue.GetValues()
	flows := make([]float64, len(values))
	for i, item := range values {
		n, err := numberValue(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		flows[i] = n
	}
	return flows, nil
}

func floatsToList(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func irrToMap(r domain.IRRResult) map[string]any {
	return map[string]any{
		"rate":       r.Rate,
		"status":     string(r.Status),
		"iterations": r.Iterations,
	}
}

func metricsToMap(m domain.ReturnMetrics) map[string]any {
	c := returns.Commentary(m)
	return map[string]any{
		"cashFlows":          floatsToList(m.CashFlows),
		"noiYear1":           m.NOIYear1,
		"entryValuation":     m.EntryValuation,
		"exitValuation":      m.ExitValuation,
		"initialDebt":        m.InitialDebt,
		"initialEquity":      m.InitialEquity,
		"debtService":        m.DebtService,
		"totalDistributions": m.TotalDistributions,
		"totalProfit":        m.TotalProfit,
		"promoteAmount":      m.PromoteAmount,
		"equityMultiple":     m.EquityMultiple,
		"irr":                irrToMap(m.IRR),
		"commentary": map[string]any{
			"irr":            c.IRR,
			"irrStatus":      string(c.IRRStatus),
			"equityMultiple": c.EquityMultiple,
			"noiYear1":       c.NOIYear1,
			"exitValuation":  c.ExitValuation,
		},
	}
}

func scenarioToMap(s *domain.Scenario) map[string]any {
	return map[string]any{
		"id":        s.ID.String(),
		"name":      s.Name,
		"inputs":    inputsToStruct(s.Inputs),
		"createdAt": s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
