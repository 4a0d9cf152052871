package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/configuration"
	"github.com/iota-uz/people-console/pkg/metrics"
)

// PersonnelGateway talks to the personnel API over HTTP. It implements
// employee.Gateway; nothing above this package sees wire shapes.
type PersonnelGateway struct {
	client *resty.Client
	log    *logrus.Logger
}

func NewPersonnelGateway(opts *configuration.PersonnelAPIOptions, log *logrus.Logger) *PersonnelGateway {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(5 * opts.RetryWait).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// Only reads are retried. Mutations are not idempotent on the personnel
	// API, so a timed-out POST must surface as an error instead of firing a
	// second time.
	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
			return false
		}
		return err != nil || resp.StatusCode() >= http.StatusInternalServerError
	})

	return &PersonnelGateway{
		client: client,
		log:    log,
	}
}

func (g *PersonnelGateway) request(ctx context.Context) *resty.Request {
	req := g.client.R().SetContext(ctx)
	if sess, err := composables.UseSession(ctx); err == nil && sess.Token != "" {
		req.SetAuthToken(sess.Token)
	}
	return req
}

// call executes one round trip and decodes the response envelope. 422 becomes
// a *ValidationError, 404 ErrNotFound; any other non-2xx a generic error.
func (g *PersonnelGateway) call(operation string, exec func() (*resty.Response, error)) (*envelope, error) {
	start := time.Now()
	resp, err := exec()
	if err != nil {
		metrics.ObserveGatewayCall(operation, "error", time.Since(start))
		g.log.WithError(err).WithField("operation", operation).Error("personnel API call failed")
		return nil, errors.Wrapf(err, "personnel API: %s", operation)
	}

	var env envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			metrics.ObserveGatewayCall(operation, "error", time.Since(start))
			return nil, errors.Wrapf(err, "personnel API: %s: malformed response", operation)
		}
	}

	switch {
	case resp.StatusCode() == http.StatusUnprocessableEntity:
		metrics.ObserveGatewayCall(operation, "validation_error", time.Since(start))
		return nil, &ValidationError{Fields: env.Errors}
	case resp.StatusCode() == http.StatusNotFound:
		metrics.ObserveGatewayCall(operation, "error", time.Since(start))
		return nil, ErrNotFound
	case resp.StatusCode() < 200 || resp.StatusCode() >= 300:
		metrics.ObserveGatewayCall(operation, "error", time.Since(start))
		message := env.Message
		if message == "" {
			message = resp.Status()
		}
		g.log.WithFields(logrus.Fields{
			"operation":   operation,
			"status_code": resp.StatusCode(),
			"message":     message,
		}).Error("personnel API returned error")
		return nil, fmt.Errorf("personnel API: %s: %s", operation, message)
	}

	metrics.ObserveGatewayCall(operation, "ok", time.Since(start))
	return &env, nil
}

func (g *PersonnelGateway) List(ctx context.Context, params *employee.FindParams) (*employee.PageResult, error) {
	query := map[string]string{
		"page":     strconv.Itoa(params.Page),
		"per_page": strconv.Itoa(params.PerPage),
		"search":   params.Search,
	}
	// Empty search is sent verbatim; absent role/status constraints are omitted.
	if params.Role != "" {
		query["role"] = params.Role
	}
	if params.Active != "" {
		query["is_active"] = params.Active
	}

	env, err := g.call("list", func() (*resty.Response, error) {
		return g.request(ctx).SetQueryParams(query).Get("/users")
	})
	if err != nil {
		return nil, err
	}

	var page paginator
	if err := json.Unmarshal(env.Data, &page); err != nil {
		return nil, errors.Wrap(err, "personnel API: list: malformed page")
	}
	return toDomainPage(&page), nil
}

func (g *PersonnelGateway) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	env, err := g.call("get", func() (*resty.Response, error) {
		return g.request(ctx).Get(fmt.Sprintf("/users/%d", id))
	})
	if err != nil {
		return nil, err
	}

	var res userResource
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, errors.Wrap(err, "personnel API: get: malformed record")
	}
	return toDomain(&res), nil
}

func (g *PersonnelGateway) GenerateLogins(ctx context.Context, firstName, lastName string) ([]employee.Suggestion, error) {
	env, err := g.call("generate_logins", func() (*resty.Response, error) {
		return g.request(ctx).
			SetQueryParam("first_name", firstName).
			SetQueryParam("last_name", lastName).
			Get("/users/generate-login")
	})
	if err != nil {
		return nil, err
	}

	var data suggestionsData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, errors.Wrap(err, "personnel API: generate_logins: malformed suggestions")
	}
	return toDomainSuggestions(&data), nil
}

func (g *PersonnelGateway) Create(ctx context.Context, data *employee.CreateData) (employee.Employee, error) {
	env, err := g.call("create", func() (*resty.Response, error) {
		return g.request(ctx).SetBody(toCreatePayload(data)).Post("/users")
	})
	if err != nil {
		return nil, err
	}

	var res userResource
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, errors.Wrap(err, "personnel API: create: malformed record")
	}
	return toDomain(&res), nil
}

func (g *PersonnelGateway) Update(ctx context.Context, id uint, data *employee.UpdateData) (employee.Employee, error) {
	env, err := g.call("update", func() (*resty.Response, error) {
		return g.request(ctx).SetBody(toUpdatePayload(data)).Put(fmt.Sprintf("/users/%d", id))
	})
	if err != nil {
		return nil, err
	}

	var res userResource
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, errors.Wrap(err, "personnel API: update: malformed record")
	}
	return toDomain(&res), nil
}

func (g *PersonnelGateway) Delete(ctx context.Context, id uint) error {
	_, err := g.call("delete", func() (*resty.Response, error) {
		return g.request(ctx).Delete(fmt.Sprintf("/users/%d", id))
	})
	return err
}

func (g *PersonnelGateway) Statistics(ctx context.Context) (*employee.Statistics, error) {
	env, err := g.call("statistics", func() (*resty.Response, error) {
		return g.request(ctx).Get("/users/statistics/overview")
	})
	if err != nil {
		return nil, err
	}

	var data statisticsData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, errors.Wrap(err, "personnel API: statistics: malformed counts")
	}
	return toDomainStatistics(&data), nil
}
