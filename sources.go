package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultRepoTimeout bounds each repository's commit fetch during a repo scan.
const DefaultRepoTimeout = 10 * time.Second

// Query identifies whose contributions to fetch and for which days.
type Query struct {
	Username string
	UserID   int64
	Start    time.Time
	End      time.Time
}

// contributionAPI is the slice of the Gitea API the sources read from.
type contributionAPI interface {
	FetchUser(ctx context.Context, username string) (*User, error)
	FetchHeatmap(ctx context.Context, username string) ([]HeatmapRecord, error)
	FetchActivityFeed(ctx context.Context, userID int64) ([]ActivityRecord, error)
	FetchRepositories(ctx context.Context, username string) ([]Repository, error)
	FetchCommits(ctx context.Context, fullName string) ([]CommitRecord, error)
}

var _ contributionAPI = (*GiteaClient)(nil)

// ContributionSource is one way of obtaining per-day contribution counts.
// Fetch returns a sparse mapping limited to [q.Start, q.End].
type ContributionSource interface {
	Name() string
	Fetch(ctx context.Context, q Query) (DailyCounts, error)
}

// heatmapSource reads the per-day aggregate endpoint.
type heatmapSource struct {
	api contributionAPI
}

func (s heatmapSource) Name() string { return "heatmap" }

func (s heatmapSource) Fetch(ctx context.Context, q Query) (DailyCounts, error) {
	records, err := s.api.FetchHeatmap(ctx, q.Username)
	if err != nil {
		return nil, err
	}

	counts := make(DailyCounts)
	for _, record := range records {
		day := time.Unix(record.Timestamp, 0).UTC()
		if !inRange(day, q.Start, q.End) {
			continue
		}
		counts[DateKey(day)] += record.Contributions
	}
	return counts, nil
}

// activitySource counts one contribution per activity feed entry.
type activitySource struct {
	api contributionAPI
}

func (s activitySource) Name() string { return "activity feed" }

func (s activitySource) Fetch(ctx context.Context, q Query) (DailyCounts, error) {
	activities, err := s.api.FetchActivityFeed(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	counts := make(DailyCounts)
	for _, activity := range activities {
		if !inRange(activity.Created, q.Start, q.End) {
			continue
		}
		counts[DateKey(activity.Created)]++
	}
	return counts, nil
}

// repoScanSource counts commits across the user's repositories, one
// repository at a time. A repository that fails or times out is skipped.
type repoScanSource struct {
	api     contributionAPI
	timeout time.Duration
	logger  *Logger
}

func (s repoScanSource) Name() string { return "repository commits" }

func (s repoScanSource) Fetch(ctx context.Context, q Query) (DailyCounts, error) {
	repos, err := s.api.FetchRepositories(ctx, q.Username)
	if err != nil {
		return nil, Wrapf(err, "failed to list repositories of %s", q.Username)
	}

	s.logger.Step(ctx, "found %d repositories, counting commits", len(repos))

	counts := make(DailyCounts)
	for i, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.logger.Step(ctx, "[%d/%d] scanning %s", i+1, len(repos), repo.FullName)
		repoLog := s.logger.With("repo", repo.FullName)

		found, err := s.scanRepository(ctx, repo.FullName, q, counts)
		if err != nil {
			reason := err.Error()
			if errors.Is(err, context.DeadlineExceeded) {
				reason = "timed out"
			}
			repoLog.Warn("skipping repository", "reason", reason)
			continue
		}
		if found > 0 {
			repoLog.Debug("counted commits", "commits", found)
		}
	}
	return counts, nil
}

// scanRepository adds one repository's in-range commits to counts under
// its own timeout and returns how many it added.
func (s repoScanSource) scanRepository(ctx context.Context, fullName string, q Query, counts DailyCounts) (int, error) {
	timeout := s.timeout
	if timeout <= 0 {
		timeout = DefaultRepoTimeout
	}
	repoCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	commits, err := s.api.FetchCommits(repoCtx, fullName)
	if err != nil {
		return 0, err
	}

	found := 0
	for _, commit := range commits {
		date := commit.Commit.Author.Date
		if date.IsZero() || !inRange(date, q.Start, q.End) {
			continue
		}
		counts[DateKey(date)]++
		found++
	}
	return found, nil
}

// DefaultSources returns the sources in the order they are tried:
// heatmap, activity feed, then repository commits.
func DefaultSources(api contributionAPI, repoTimeout time.Duration, logger *Logger) []ContributionSource {
	return []ContributionSource{
		heatmapSource{api: api},
		activitySource{api: api},
		repoScanSource{api: api, timeout: repoTimeout, logger: logger.WithComponent("repo-scan")},
	}
}

// FetchResult is the outcome of FetchContributions.
type FetchResult struct {
	User   *User
	Counts DailyCounts
	Source string
}

// FetchContributions resolves the user and then tries each source in order,
// returning the first success. An unknown user or a rejected token fails
// immediately. If every source fails the error wraps ErrSourcesExhausted.
func FetchContributions(ctx context.Context, api contributionAPI, sources []ContributionSource, q Query, logger *Logger) (*FetchResult, error) {
	logger.Info("looking up user", "username", q.Username)
	user, err := api.FetchUser(ctx, q.Username)
	if err != nil {
		return nil, err
	}
	q.UserID = user.ID
	logger.Step(ctx, "found user id %d", user.ID)

	counts, source, err := trySources(ctx, sources, q, logger)
	if err != nil {
		return nil, err
	}

	return &FetchResult{User: user, Counts: counts, Source: source}, nil
}

// trySources runs sources in order until one succeeds.
func trySources(ctx context.Context, sources []ContributionSource, q Query, logger *Logger) (DailyCounts, string, error) {
	var failures []error
	for _, source := range sources {
		logger.Step(ctx, "fetching contributions via %s", source.Name())

		counts, err := source.Fetch(ctx, q)
		if err == nil {
			logger.Step(ctx, "got %d days of data via %s", len(counts), source.Name())
			return counts, source.Name(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}

		logger.Warn(source.Name()+" unavailable, falling back", "error", err)
		failures = append(failures, fmt.Errorf("%s: %w", source.Name(), err))
	}

	return nil, "", fmt.Errorf("%w: %w", ErrSourcesExhausted, errors.Join(failures...))
}
