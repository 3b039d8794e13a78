// Package client es un cliente tipado del endpoint /patHistory.
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"patient-history/internal/domain/history"
	"patient-history/internal/platform/httpclient"
)

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) Get(ctx context.Context, id string) (history.Transfer, error) {
	var out history.Transfer
	err := c.http.DoJSON(ctx, http.MethodGet, "/patHistory/"+url.PathEscape(id), nil, nil, &out)
	return out, mapErr(err)
}

func (c *Client) ListByPatient(ctx context.Context, patientID int) ([]history.Transfer, error) {
	out := make([]history.Transfer, 0)
	q := url.Values{"patId": {strconv.Itoa(patientID)}}
	err := c.http.DoJSON(ctx, http.MethodGet, "/patHistory?"+q.Encode(), nil, nil, &out)
	return out, mapErr(err)
}

func (c *Client) ListAll(ctx context.Context) ([]history.Transfer, error) {
	out := make([]history.Transfer, 0)
	err := c.http.DoJSON(ctx, http.MethodGet, "/patHistory/all", nil, nil, &out)
	return out, mapErr(err)
}

// Create envía el alta form-encoded, igual que el front.
func (c *Client) Create(ctx context.Context, in history.Transfer) (history.Transfer, error) {
	form := url.Values{}
	form.Set("patId", strconv.Itoa(in.PatientID))
	form.Set("patient", in.PatientName)
	form.Set("notes", in.Notes)
	if in.CreationDate != nil {
		form.Set("creationDate", in.CreationDate.String())
	}

	var out history.Transfer
	err := c.http.DoForm(ctx, http.MethodPost, "/patHistory/add", nil, form, &out)
	return out, mapErr(err)
}

func (c *Client) Update(ctx context.Context, id string, in history.Transfer) (history.Transfer, error) {
	var out history.Transfer
	err := c.http.DoJSON(ctx, http.MethodPut, "/patHistory/update/"+url.PathEscape(id), nil, in, &out)
	return out, mapErr(err)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	err := c.http.DoJSON(ctx, http.MethodDelete, "/patHistory/"+url.PathEscape(id), nil, nil, nil)
	return mapErr(err)
}

// mapErr traduce 404 a history.ErrNotFound; el resto se devuelve tal cual.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return history.ErrNotFound
	}
	return err
}
