package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the external places lookup service: free-text name plus
// location in, candidate restaurant records out. The core treats it as an
// opaque collaborator; only the suggestion flow calls it.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// Candidate is one possible match for a suggested restaurant.
type Candidate struct {
	Name         string
	Address      string
	CategoryHint string
	Lat          float64
	Lng          float64
	Rating       float64
}

// Bounds is a geographic bounding box used to reject candidates outside the
// service area.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether the point lies inside the box. A zero-value Bounds
// accepts everything.
func (b Bounds) Contains(lat, lng float64) bool {
	if b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0 {
		return true
	}
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

type searchResp struct {
	Results []searchItem `json:"results"`
}

type searchItem struct {
	Name     string  `json:"name"`
	Address  string  `json:"formatted_address"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Rating   float64 `json:"rating"`
}

func New(apiKey, baseURL string) *Client {
	return &Client{APIKey: apiKey, BaseURL: baseURL, Client: &http.Client{Timeout: 15 * time.Second}}
}

// Search looks up candidates for a free-text name and location, filtered to
// the given bounds.
func (c *Client) Search(ctx context.Context, name, location string, bounds Bounds) ([]Candidate, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing places API key")
	}

	u, err := url.Parse(c.BaseURL + "/search")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", c.APIKey)
	q.Set("query", name+" "+location)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places status %d", resp.StatusCode)
	}

	var sr searchResp
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	var out []Candidate
	for _, it := range sr.Results {
		if it.Name == "" {
			continue
		}
		if !bounds.Contains(it.Lat, it.Lng) {
			continue
		}
		out = append(out, Candidate{
			Name:         it.Name,
			Address:      it.Address,
			CategoryHint: it.Category,
			Lat:          it.Lat,
			Lng:          it.Lng,
			Rating:       it.Rating,
		})
	}
	return out, nil
}
