package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Seitek2002/ibox-next/config"
	"github.com/Seitek2002/ibox-next/models"
)

// ErrNotFound is returned when the organizations API has no venue for the
// requested slug (or table). Handlers map it to a not-found view instead
// of a partial venue.
var ErrNotFound = errors.New("venue not found")

// Client talks to the upstream organizations API.
type Client struct {
	base string
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		base: config.APIBase(),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// VenuePath builds the request path for a venue lookup:
//   - no slug            -> organizations/
//   - slug               -> organizations/<slug>/            (?spotId=N when set)
//   - slug + tableID     -> organizations/<slug>/table/<id>/
func VenuePath(slug string, spotID *int, tableID string) string {
	if slug == "" {
		return "organizations/"
	}
	if tableID != "" {
		return "organizations/" + url.PathEscape(slug) + "/table/" + url.PathEscape(tableID) + "/"
	}
	p := "organizations/" + url.PathEscape(slug) + "/"
	if spotID != nil {
		p += "?spotId=" + fmt.Sprint(*spotID)
	}
	return p
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.base + path)
	if err != nil {
		return fmt.Errorf("failed to reach organizations API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("organizations API error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse organizations response: %v", err)
	}
	return nil
}

// GetVenues lists all organizations.
func (c *Client) GetVenues() ([]models.Venue, error) {
	var venues []models.Venue
	if err := c.get(VenuePath("", nil, ""), &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetVenue fetches one organization by slug, optionally scoped to a spot.
func (c *Client) GetVenue(slug string, spotID *int) (*models.Venue, error) {
	var venue models.Venue
	if err := c.get(VenuePath(slug, spotID, ""), &venue); err != nil {
		return nil, err
	}
	if venue.CompanyName == "" && venue.ID == 0 {
		return nil, ErrNotFound
	}
	return &venue, nil
}

// GetVenueTable fetches an organization through a table-specific code.
func (c *Client) GetVenueTable(slug, tableID string) (*models.Venue, error) {
	var venue models.Venue
	if err := c.get(VenuePath(slug, nil, tableID), &venue); err != nil {
		return nil, err
	}
	if venue.CompanyName == "" && venue.ID == 0 {
		return nil, ErrNotFound
	}
	return &venue, nil
}
