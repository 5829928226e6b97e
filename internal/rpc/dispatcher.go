package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/observability"

	"github.com/sirupsen/logrus"
)

// Request is the body of POST /api/rpc.
type Request struct {
	Module       string            `json:"module"`
	FunctionName string            `json:"functionName"`
	Args         []json.RawMessage `json:"args"`
}

type Dispatcher struct {
	registry Registry
	log      *logrus.Logger
	metrics  *observability.Metrics
}

func NewDispatcher(registry Registry, log *logrus.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{registry: registry, log: log, metrics: metrics}
}

// Dispatch runs one call and returns the HTTP status and response body.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *models.Session, req Request) (int, any) {
	start := time.Now()
	fields := logrus.Fields{"module": req.Module, "function": req.FunctionName}
	if sess != nil {
		fields["user_id"] = sess.ID
		fields["tenant_id"] = sess.TenantID
	}

	action, ok := d.registry.Lookup(req.Module, req.FunctionName)
	if !ok {
		d.log.WithFields(fields).Warn("RPC function not found")
		// unknown names are not used as labels
		d.metrics.ObserveRPC("unknown", "unknown", "NOT_FOUND", time.Since(start))
		return http.StatusNotFound, common.Envelope{
			Success: false,
			Error:   fmt.Sprintf("Function %s.%s not found", req.Module, req.FunctionName),
		}
	}

	data, err := d.invoke(action, &Call{Ctx: ctx, Session: sess, Args: req.Args})
	elapsed := time.Since(start)
	fields["duration_ms"] = elapsed.Milliseconds()

	if err != nil {
		status, body := d.failure(err, fields)
		d.metrics.ObserveRPC(req.Module, req.FunctionName, string(body.Code), elapsed)
		return status, body
	}

	d.log.WithFields(fields).Debug("RPC call completed")
	d.metrics.ObserveRPC(req.Module, req.FunctionName, "", elapsed)
	switch v := data.(type) {
	case common.MigrateResult:
		return http.StatusOK, v
	case Result:
		return http.StatusOK, common.OKWithMessage(v.Data, v.Message)
	default:
		return http.StatusOK, common.OK(data)
	}
}

func (d *Dispatcher) invoke(action Action, call *Call) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in rpc action: %v", r)
		}
	}()
	if err := action.Guard.check(call.Session); err != nil {
		return nil, err
	}
	return action.Handler(call)
}

// failure logs the raw error and renders the client-safe envelope. Classified
// errors are reported with 200, everything else with 500.
func (d *Dispatcher) failure(err error, fields logrus.Fields) (int, common.Envelope) {
	classified := common.Classify(err)
	kind := common.KindOf(classified)
	fields["code"] = kind
	entry := d.log.WithFields(fields).WithError(err)

	switch kind {
	case "", common.KindInternal:
		entry.Error("RPC call failed")
		return http.StatusInternalServerError, common.Fail(classified)
	case common.KindUninitialized, common.KindConnectionUnavailable, common.KindConflict:
		entry.Error("RPC call failed")
	default:
		entry.Info("RPC call rejected")
	}
	return http.StatusOK, common.Fail(classified)
}
