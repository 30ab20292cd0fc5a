package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/irr"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/leverage"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/report"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/returns"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/scenario"
)

// Server implements the ReturnEngineService gRPC server
type Server struct {
	ScenarioService *scenario.ScenarioService
	ReportService   *report.ReportService
}

var _ ReturnEngineServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(scenarioService *scenario.ScenarioService, reportService *report.ReportService) *Server {
	return &Server{
		ScenarioService: scenarioService,
		ReportService:   reportService,
	}
}

// CalculateIRR handles the CalculateIRR RPC.
// A non-converged solve is not an RPC error unless the request sets "strict":
// by default the status travels in the response.
func (s *Server) CalculateIRR(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	flows, err := cashFlowsField(req, "cashFlows")
	if err != nil {
		return nil, mapError(err)
	}

	guess, err := optionalNumber(req, "guess", irr.DefaultGuess)
	if err != nil {
		return nil, mapError(err)
	}

	result := irr.CalculateIRR(flows, guess)
	if err := checkStrict(req, result); err != nil {
		return nil, mapError(err)
	}

	return respond(irrToMap(result))
}

// CalculateLTV handles the CalculateLTV RPC
func (s *Server) CalculateLTV(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	debt, err := requiredNumber(req, "totalDebt")
	if err != nil {
		return nil, mapError(err)
	}
	valuation, err := requiredNumber(req, "valuation")
	if err != nil {
		return nil, mapError(err)
	}

	result := leverage.CalculateLTV(debt, valuation)

	return respond(map[string]any{
		"ltv":       result.LTV,
		"riskLevel": string(result.RiskLevel),
	})
}

// CalculateWACC handles the CalculateWACC RPC
func (s *Server) CalculateWACC(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var args [4]float64
	for i, field := range []string{"equityAmount", "equityCost", "debtAmount", "debtCost"} {
		v, err := requiredNumber(req, field)
		if err != nil {
			return nil, mapError(err)
		}
		args[i] = v
	}

	return respond(map[string]any{
		"wacc": leverage.CalculateWACC(args[0], args[1], args[2], args[3]),
	})
}

// Project handles the Project RPC. The request is the ProjectionInputs object itself,
// optionally carrying "strict".
func (s *Server) Project(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	inputs, err := inputsFromStruct(withoutField(req, strictField))
	if err != nil {
		return nil, mapError(err)
	}

	metrics, err := returns.Evaluate(inputs)
	if err != nil {
		return nil, mapError(err)
	}

	if err := checkStrict(req, metrics.IRR); err != nil {
		return nil, mapError(err)
	}

	return respond(metricsToMap(metrics))
}

// CreateScenario handles the CreateScenario RPC
func (s *Server) CreateScenario(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := stringField(req, "name")
	if err != nil {
		return nil, mapError(err)
	}

	inputs, err := inputsFromStruct(req.GetFields()["inputs"].GetStructValue())
	if err != nil {
		return nil, mapError(err)
	}

	created, err := s.ScenarioService.Create(ctx, name, inputs)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(scenarioToMap(created))
}

// GetScenario handles the GetScenario RPC
func (s *Server) GetScenario(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "id")
	if err != nil {
		return nil, mapError(err)
	}

	found, err := s.ScenarioService.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(scenarioToMap(found))
}

// ListScenarios handles the ListScenarios RPC
func (s *Server) ListScenarios(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := optionalInt(req, "limit", 0)
	if err != nil {
		return nil, mapError(err)
	}

	scenarios, err := s.ScenarioService.List(ctx, limit)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]any, len(scenarios))
	for i, sc := range scenarios {
		items[i] = scenarioToMap(sc)
	}

	return respond(map[string]any{"scenarios": items})
}

// SimulateScenario handles the SimulateScenario RPC
func (s *Server) SimulateScenario(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "id")
	if err != nil {
		return nil, mapError(err)
	}

	result, err := s.ScenarioService.Simulate(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	if err := checkStrict(req, result.Metrics.IRR); err != nil {
		return nil, mapError(err)
	}

	return respond(map[string]any{
		"scenario": scenarioToMap(result.Scenario),
		"metrics":  metricsToMap(result.Metrics),
	})
}

// RenderReport handles the RenderReport RPC.
// The request names either a stored scenario ("id") or ad-hoc "inputs" with an optional "name".
func (s *Server) RenderReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		name    string
		inputs  domain.ProjectionInputs
		metrics domain.ReturnMetrics
	)

	if _, ok := req.GetFields()["id"]; ok {
		id, err := uuidField(req, "id")
		if err != nil {
			return nil, mapError(err)
		}
		result, err := s.ScenarioService.Simulate(ctx, id)
		if err != nil {
			return nil, mapError(err)
		}
		name, inputs, metrics = result.Scenario.Name, result.Scenario.Inputs, result.Metrics
	} else {
		var err error
		if name, err = stringField(req, "name"); err != nil {
			return nil, mapError(err)
		}
		if inputs, err = inputsFromStruct(req.GetFields()["inputs"].GetStructValue()); err != nil {
			return nil, mapError(err)
		}
		if metrics, err = returns.Evaluate(inputs); err != nil {
			return nil, mapError(err)
		}
	}

	rendered, err := s.ReportService.Render(ctx, name, inputs, metrics)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(map[string]any{
		"markdown": rendered.Markdown,
		"html":     rendered.HTML,
		"chartPng": rendered.Chart, // base64 string on the wire
	})
}

// checkStrict returns the IRR status error when the request sets "strict"
func checkStrict(req *structpb.Struct, result domain.IRRResult) error {
	strict, err := optionalBool(req, strictField)
	if err != nil {
		return err
	}
	if !strict {
		return nil
	}
	return result.Err()
}

func respond(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrScenarioNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrNotConverged), errors.Is(err, domain.ErrIndeterminate):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Error(codes.Internal, err.Error())
}
