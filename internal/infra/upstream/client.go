// Package upstream is the HTTP client for the platform backend's house and
// room calendar endpoints.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

// Client calls the platform backend over REST/JSON.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
	Logger  *slog.Logger
}

// StatusError reports a non-2xx upstream response with a body snippet.
type StatusError struct {
	Status  int
	Path    string
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: %s returned status %d: %s", e.Path, e.Status, e.Snippet)
}

// wireDay matches the backend's day cell. The backend spells flags
// inconsistently across endpoints (isToDay, isPeakDay vs snake_case prices);
// this is the one place that knows about it.
type wireDay struct {
	Day            int   `json:"day"`
	IsBlank        bool  `json:"isBlank"`
	IsDisable      bool  `json:"isDisable"`
	IsLock         bool  `json:"isLock"`
	IsHoliday      bool  `json:"isHoliday"`
	IsToday        bool  `json:"isToDay"`
	IsPeakDay      bool  `json:"isPeakDay"`
	HasDiscount    bool  `json:"has_discount"`
	EffectivePrice int64 `json:"effective_price"`
	OriginalPrice  int64 `json:"original_price"`
}

type wireMonth struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	Days      []wireDay `json:"days"`
}

type wireHouse struct {
	UUID       string `json:"uuid"`
	RentByRoom bool   `json:"is_rent_room"`
	Rooms      []struct {
		UUID string `json:"uuid"`
		Name string `json:"name"`
	} `json:"rooms"`
}

type peakRangeBody struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// InitialMonth fetches the backend's current month for a track.
func (c *Client) InitialMonth(ctx context.Context, track window.Track) (calendar.Month, error) {
	return c.fetchMonth(ctx, track, 0, 0)
}

// MonthAt fetches a specific month page for a track.
func (c *Client) MonthAt(ctx context.Context, track window.Track, year, month int) (calendar.Month, error) {
	return c.fetchMonth(ctx, track, year, month)
}

// Rooms lists the room tracks of a house; empty for whole-house rentals.
func (c *Client) Rooms(ctx context.Context, houseID string) ([]window.RoomRef, error) {
	var house wireHouse
	if err := c.getJSON(ctx, "/house/"+url.PathEscape(houseID), nil, &house); err != nil {
		return nil, err
	}
	if !house.RentByRoom {
		return nil, nil
	}
	rooms := make([]window.RoomRef, 0, len(house.Rooms))
	for _, r := range house.Rooms {
		rooms = append(rooms, window.RoomRef{ID: r.UUID, Name: r.Name})
	}
	return rooms, nil
}

// MarkPeakDays marks [fromDate, toDate] as peak days for a house.
func (c *Client) MarkPeakDays(ctx context.Context, houseID, fromDate, toDate string) error {
	path := "/house/" + url.PathEscape(houseID) + "/peak-days"
	return c.send(ctx, http.MethodPost, path, peakRangeBody{FromDate: fromDate, ToDate: toDate})
}

// UnmarkPeakDays removes the peak marking from [fromDate, toDate].
func (c *Client) UnmarkPeakDays(ctx context.Context, houseID, fromDate, toDate string) error {
	path := "/house/" + url.PathEscape(houseID) + "/peak-days"
	return c.send(ctx, http.MethodDelete, path, peakRangeBody{FromDate: fromDate, ToDate: toDate})
}

func (c *Client) fetchMonth(ctx context.Context, track window.Track, year, month int) (calendar.Month, error) {
	path := "/house/" + url.PathEscape(track.HouseID)
	if track.RoomID != "" {
		path += "/room/" + url.PathEscape(track.RoomID)
	}
	path += "/calendar"

	var query url.Values
	if year != 0 {
		query = url.Values{}
		query.Set("year", strconv.Itoa(year))
		query.Set("month", strconv.Itoa(month))
	}

	var page wireMonth
	if err := c.getJSON(ctx, path, query, &page); err != nil {
		return calendar.Month{}, err
	}
	out := mapMonth(page)
	if err := out.Validate(); err != nil {
		return calendar.Month{}, err
	}
	return out, nil
}

func mapMonth(page wireMonth) calendar.Month {
	days := make([]calendar.Day, 0, len(page.Days))
	for _, d := range page.Days {
		days = append(days, calendar.Day{
			Number:         d.Day,
			Blank:          d.IsBlank,
			Disabled:       d.IsDisable,
			Locked:         d.IsLock,
			Holiday:        d.IsHoliday,
			Today:          d.IsToday,
			PeakDay:        d.IsPeakDay,
			HasDiscount:    d.HasDiscount,
			EffectivePrice: d.EffectivePrice,
			OriginalPrice:  d.OriginalPrice,
		})
	}
	return calendar.Month{Year: page.Year, Month: page.Month, Name: page.MonthName, Days: days}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.check(); err != nil {
		return err
	}
	target := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	c.decorate(request)

	resp, err := c.HTTP.Do(request)
	if err != nil {
		c.logError(path, err)
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, path); err != nil {
		c.logError(path, err)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logError(path, err)
		return fmt.Errorf("upstream: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) error {
	if err := c.check(); err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	target := strings.TrimRight(c.BaseURL, "/") + path
	request, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	c.decorate(request)

	resp, err := c.HTTP.Do(request)
	if err != nil {
		c.logError(path, err)
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, path); err != nil {
		c.logError(path, err)
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) check() error {
	if c == nil || c.HTTP == nil {
		return errors.New("upstream: http client not configured")
	}
	if c.BaseURL == "" {
		return errors.New("upstream: base url not configured")
	}
	return nil
}

func (c *Client) decorate(request *http.Request) {
	request.Header.Set("Accept", "application/json")
	if c.Token != "" {
		request.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) logError(path string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error("upstream request failed", "path", path, "error", err)
}

func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Status: resp.StatusCode, Path: path, Snippet: string(snippet)}
}

var _ window.MonthSource = (*Client)(nil)
