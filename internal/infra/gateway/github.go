package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"templatehub/internal/pkg/config"
	"templatehub/internal/pkg/errs"
	"templatehub/internal/usecase/commands"

	"github.com/go-resty/resty/v2"
)

// GithubGrantor adds paying customers to the org team that carries read
// access to the template repositories. With a username it issues a direct
// team membership; without one it falls back to an email invitation.
type GithubGrantor struct {
	client *resty.Client
	cfg    config.GitHubConfig
}

func NewGithubGrantor(cfg config.GitHubConfig) *GithubGrantor {
	client := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json")

	return &GithubGrantor{client: client, cfg: cfg}
}

type githubTeam struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
}

func (g *GithubGrantor) Grant(ctx context.Context, grant commands.AccessGrant) (*commands.GrantOutcome, error) {
	teamSlug := g.cfg.TeamSlugFor(grant.Package.String())
	if teamSlug == "" {
		// Tier without repository access; nothing to grant.
		return &commands.GrantOutcome{Success: false}, nil
	}

	team, err := g.findTeam(ctx, teamSlug)
	if err != nil {
		return nil, err
	}

	if grant.GithubUsername != nil && *grant.GithubUsername != "" {
		err = g.addTeamMembership(ctx, teamSlug, *grant.GithubUsername)
	} else {
		err = g.inviteByEmail(ctx, grant.Email, team.ID)
	}
	if err != nil {
		return nil, err
	}

	teamID := strconv.FormatInt(team.ID, 10)
	return &commands.GrantOutcome{Success: true, TeamID: &teamID}, nil
}

func (g *GithubGrantor) findTeam(ctx context.Context, slug string) (*githubTeam, error) {
	var team githubTeam
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&team).
		Get(fmt.Sprintf("/orgs/%s/teams/%s", g.cfg.Org, slug))
	if err != nil {
		return nil, errs.Wrap(err, "github api unreachable")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errs.New(fmt.Sprintf("github team lookup failed: %s status %d", slug, resp.StatusCode()))
	}
	return &team, nil
}

func (g *GithubGrantor) addTeamMembership(ctx context.Context, teamSlug, username string) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"role": "member"}).
		Put(fmt.Sprintf("/orgs/%s/teams/%s/memberships/%s", g.cfg.Org, teamSlug, username))
	if err != nil {
		return errs.Wrap(err, "github api unreachable")
	}
	if resp.StatusCode() != http.StatusOK {
		return errs.New(fmt.Sprintf("github team membership failed: %s status %d", username, resp.StatusCode()))
	}
	return nil
}

func (g *GithubGrantor) inviteByEmail(ctx context.Context, email string, teamID int64) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":    email,
			"role":     "direct_member",
			"team_ids": []int64{teamID},
		}).
		Post(fmt.Sprintf("/orgs/%s/invitations", g.cfg.Org))
	if err != nil {
		return errs.Wrap(err, "github api unreachable")
	}
	if resp.StatusCode() != http.StatusCreated {
		return errs.New(fmt.Sprintf("github org invitation failed: status %d", resp.StatusCode()))
	}
	return nil
}
