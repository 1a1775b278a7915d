package causelistsvc

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/causelist"
)

const dailyPath = "/getDailyCauselist"

// Client fetches daily causelists from the Telangana High Court endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	logger  core.Logger
}

var _ causelist.Fetcher = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: conf.Causelist.BaseURL,
		http:    &http.Client{Timeout: conf.Causelist.Timeout},
		logger:  logger,
	}
}

func (c *Client) FetchDaily(ctx context.Context, advocateCode, listDate string) (causelist.FetchResult, error) {
	q := url.Values{}
	q.Set("advocateCode", advocateCode)
	q.Set("listDate", listDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+dailyPath+"?"+q.Encode(), nil)
	if err != nil {
		return causelist.FetchResult{}, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return causelist.FetchResult{}, errors.Wrap(err, "calling causelist endpoint")
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return causelist.FetchResult{}, core.NewExternalServiceError("causelist endpoint", res.StatusCode)
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return causelist.FetchResult{}, errors.Wrap(err, "reading response")
	}
	return c.decodePayload(body), nil
}

// payload is the documented response shape; older deployments return a
// bare case array instead.
type payload struct {
	Cases        []causelist.CaseEntry `json:"cases"`
	Count        int                   `json:"count"`
	AdvocateCode string                `json:"advocate_code"`
	Date         string                `json:"date"`
}

// decodePayload normalizes the endpoint's response variants. Anything
// that is neither the wrapper object nor a bare array is treated as an
// empty list rather than an error.
func (c *Client) decodePayload(body []byte) causelist.FetchResult {
	var wrapped payload
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return causelist.FetchResult{
			AdvocateCode: wrapped.AdvocateCode,
			ListDate:     wrapped.Date,
			Count:        wrapped.Count,
			Cases:        wrapped.Cases,
		}
	}

	var cases []causelist.CaseEntry
	if err := json.Unmarshal(body, &cases); err == nil {
		return causelist.FetchResult{Count: len(cases), Cases: cases}
	}

	c.logger.Warn("causelist endpoint returned an unrecognized payload")
	return causelist.FetchResult{}
}
