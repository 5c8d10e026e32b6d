package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jansuraksha/jan-suraksha-api/api"
	"github.com/jansuraksha/jan-suraksha-api/config"
)

const (
	contributorsCacheKey = "jan_suraksha_contributors"
	contributorsCacheTTL = 5 * time.Minute
	githubAPITimeout     = 10 * time.Second
)

// projectLead is pinned at the top of the listing and excluded from the
// fetched contributor cards.
var projectLead = Contributor{
	Login:       "Anjalijagta",
	Name:        "Anjali Jagtap",
	Description: "Founder & core maintainer of Jan Suraksha, responsible for project direction, architecture, and community leadership.",
	AvatarURL:   "https://avatars.githubusercontent.com/u/138389224?v=4&s=80",
	HTMLURL:     "https://github.com/Anjalijagta",
}

// Contributor is one card in the public contributors listing
type Contributor struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Commits     int    `json:"commits"`
}

type githubContributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
}

type contributorsResponse struct {
	ProjectLead  Contributor   `json:"project_lead"`
	Contributors []Contributor `json:"contributors"`
	Cached       bool          `json:"cached"`
}

// Contributors serves the public contributor leaderboard backed by the
// GitHub API with a short cache in front of it
type Contributors struct {
	Config *config.Config
	Cache  api.Cache

	// HTTPClient is swapped in tests; nil means a default client with the
	// GitHub API timeout
	HTTPClient *http.Client
}

// ContributorsHandler lists project contributors. GitHub failures degrade to
// an empty listing with the project lead still present, never an error page.
func (c Contributors) ContributorsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if cached, ok := c.Cache.Get(r.Context(), contributorsCacheKey); ok {
		var list []Contributor
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			writeJSON(w, http.StatusOK, contributorsResponse{
				ProjectLead:  projectLead,
				Contributors: list,
				Cached:       true,
			})
			return
		}
	}

	list := c.fetchContributors(r)

	if payload, err := json.Marshal(list); err == nil {
		c.Cache.Set(r.Context(), contributorsCacheKey, string(payload), contributorsCacheTTL)
	}

	writeJSON(w, http.StatusOK, contributorsResponse{
		ProjectLead:  projectLead,
		Contributors: list,
	})
}

func (c Contributors) fetchContributors(r *http.Request) []Contributor {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: githubAPITimeout}
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/contributors?page=1&per_page=100", c.Config.GithubRepo)
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, url, nil)
	if err != nil {
		zap.S().Warnw("failed to build contributors request", "error", err)
		return []Contributor{}
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "JanSuraksha/1.0 (https://github.com/"+c.Config.GithubRepo+")")

	resp, err := client.Do(req)
	if err != nil {
		zap.S().Warnw("contributors fetch failed", "error", err)
		return []Contributor{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.S().Warnw("contributors fetch returned non-200", "status", resp.StatusCode)
		return []Contributor{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		zap.S().Warnw("contributors body read failed", "error", err)
		return []Contributor{}
	}

	var fetched []githubContributor
	if err := json.Unmarshal(body, &fetched); err != nil {
		zap.S().Warnw("contributors payload unmarshal failed", "error", err)
		return []Contributor{}
	}

	list := []Contributor{}
	for _, gc := range fetched {
		if strings.EqualFold(gc.Login, projectLead.Login) {
			continue
		}
		list = append(list, Contributor{
			Login:     gc.Login,
			AvatarURL: gc.AvatarURL,
			HTMLURL:   gc.HTMLURL,
			Commits:   gc.Contributions,
		})
	}
	return list
}
