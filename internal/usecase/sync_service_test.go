package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openscout/frc-sync/internal/domain/alliance"
	"github.com/openscout/frc-sync/internal/domain/etag"
	"github.com/openscout/frc-sync/internal/domain/event"
	"github.com/openscout/frc-sync/internal/domain/match"
	"github.com/openscout/frc-sync/internal/domain/ranking"
	"github.com/openscout/frc-sync/internal/domain/team"
	"github.com/openscout/frc-sync/internal/platform/logging"
	"github.com/openscout/frc-sync/internal/platform/resilience"
)

type fetchCall struct {
	endpoint string
	etag     string
}

type fakeFetcher struct {
	responses map[string]FetchResult
	errs      map[string]error
	calls     []fetchCall
}

func (f *fakeFetcher) Fetch(ctx context.Context, endpoint, cachedETag string) (FetchResult, error) {
	f.calls = append(f.calls, fetchCall{endpoint: endpoint, etag: cachedETag})
	if err, ok := f.errs[endpoint]; ok {
		return FetchResult{}, err
	}
	if res, ok := f.responses[endpoint]; ok {
		return res, nil
	}
	return FetchResult{Body: []byte("[]")}, nil
}

// fakeStore implements every repository the service writes through, logging
// call names so tests can assert flush ordering.
type fakeStore struct {
	calls []string

	teamKeys  []string
	scopeRows []event.ScopeRow
	cached    map[string]string

	teamBatches          [][]team.Team
	districtBatches      [][]event.District
	eventBatches         [][]event.Event
	participationBatches [][]event.Participation
	matchBatches         [][]match.Match
	matchAllianceBatches [][]match.Alliance
	matchTeamBatches     [][]match.AllianceTeam
	rankingBatches       [][]ranking.Ranking
	infoBatches          [][]ranking.EventInfo
	allianceBatches      [][]alliance.Alliance
	allianceTeamBatches  [][]alliance.AllianceTeam
	etagBatches          [][]etag.Record
}

func (s *fakeStore) UpsertMany(ctx context.Context, teams []team.Team) error {
	s.calls = append(s.calls, "upsert_teams")
	s.teamBatches = append(s.teamBatches, teams)
	return nil
}

func (s *fakeStore) ListKeys(ctx context.Context) ([]string, error) {
	s.calls = append(s.calls, "list_team_keys")
	return s.teamKeys, nil
}

func (s *fakeStore) UpsertEvents(ctx context.Context, events []event.Event) error {
	s.calls = append(s.calls, "upsert_events")
	s.eventBatches = append(s.eventBatches, events)
	return nil
}

func (s *fakeStore) UpsertDistricts(ctx context.Context, districts []event.District) error {
	s.calls = append(s.calls, "upsert_districts")
	s.districtBatches = append(s.districtBatches, districts)
	return nil
}

func (s *fakeStore) UpsertParticipations(ctx context.Context, rows []event.Participation) error {
	s.calls = append(s.calls, "upsert_participations")
	s.participationBatches = append(s.participationBatches, rows)
	return nil
}

func (s *fakeStore) ListScopeRows(ctx context.Context) ([]event.ScopeRow, error) {
	s.calls = append(s.calls, "list_scope_rows")
	return s.scopeRows, nil
}

func (s *fakeStore) UpsertMatches(ctx context.Context, matches []match.Match) error {
	s.calls = append(s.calls, "upsert_matches")
	s.matchBatches = append(s.matchBatches, matches)
	return nil
}

func (s *fakeStore) UpsertAlliances(ctx context.Context, alliances []match.Alliance) error {
	s.calls = append(s.calls, "upsert_match_alliances")
	s.matchAllianceBatches = append(s.matchAllianceBatches, alliances)
	return nil
}

func (s *fakeStore) UpsertAllianceTeams(ctx context.Context, teams []match.AllianceTeam) error {
	s.calls = append(s.calls, "upsert_match_alliance_teams")
	s.matchTeamBatches = append(s.matchTeamBatches, teams)
	return nil
}

func (s *fakeStore) UpsertRankings(ctx context.Context, rankings []ranking.Ranking) error {
	s.calls = append(s.calls, "upsert_rankings")
	s.rankingBatches = append(s.rankingBatches, rankings)
	return nil
}

func (s *fakeStore) UpsertEventInfos(ctx context.Context, infos []ranking.EventInfo) error {
	s.calls = append(s.calls, "upsert_ranking_infos")
	s.infoBatches = append(s.infoBatches, infos)
	return nil
}

func (s *fakeStore) Get(ctx context.Context, endpoint string) (string, bool, error) {
	value, ok := s.cached[endpoint]
	return value, ok, nil
}

func (s *fakeStore) GetBulk(ctx context.Context, template string) (map[string]string, error) {
	s.calls = append(s.calls, "etag_get_bulk")
	prefix, suffix, _ := strings.Cut(template, "{")
	if idx := strings.Index(suffix, "}"); idx >= 0 {
		suffix = suffix[idx+1:]
	}
	out := make(map[string]string)
	for endpoint, value := range s.cached {
		if strings.HasPrefix(endpoint, prefix) && strings.HasSuffix(endpoint, suffix) {
			out[endpoint] = value
		}
	}
	return out, nil
}

type fakeAllianceRepo struct {
	store *fakeStore
}

func (r *fakeAllianceRepo) UpsertAlliances(ctx context.Context, alliances []alliance.Alliance) error {
	r.store.calls = append(r.store.calls, "upsert_alliances")
	r.store.allianceBatches = append(r.store.allianceBatches, alliances)
	return nil
}

func (r *fakeAllianceRepo) UpsertAllianceTeams(ctx context.Context, teams []alliance.AllianceTeam) error {
	r.store.calls = append(r.store.calls, "upsert_alliance_teams")
	r.store.allianceTeamBatches = append(r.store.allianceTeamBatches, teams)
	return nil
}

type fakeEtagRepo struct {
	store *fakeStore
}

func (r *fakeEtagRepo) Get(ctx context.Context, endpoint string) (string, bool, error) {
	return r.store.Get(ctx, endpoint)
}

func (r *fakeEtagRepo) GetBulk(ctx context.Context, template string) (map[string]string, error) {
	return r.store.GetBulk(ctx, template)
}

func (r *fakeEtagRepo) UpsertMany(ctx context.Context, records []etag.Record) error {
	r.store.calls = append(r.store.calls, "upsert_etags")
	r.store.etagBatches = append(r.store.etagBatches, records)
	return nil
}

func newTestSyncService(fetcher *fakeFetcher, store *fakeStore, batchSize int, now time.Time) *SyncService {
	if store.cached == nil {
		store.cached = map[string]string{}
	}
	resolver := NewScopeResolver(store)
	resolver.now = func() time.Time { return now }

	retry := resilience.RetryPolicy{
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
		Multiplier:  1,
		MaxDelay:    time.Millisecond,
	}
	cfg := SyncConfig{
		BatchSize:     batchSize,
		TeamsMaxPages: 10,
		TaskRetry:     retry,
		FlowRetry:     retry,
	}

	return NewSyncService(
		fetcher,
		store,
		store,
		store,
		store,
		&fakeAllianceRepo{store: store},
		&fakeEtagRepo{store: store},
		resolver,
		logging.NewNop(),
		cfg,
	)
}

func testNow() time.Time {
	return time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
}

// pastScopeRows are events from a finished season, so they land in the FULL
// tier regardless of the fixed test clock.
func pastScopeRows(keys ...string) []event.ScopeRow {
	rows := make([]event.ScopeRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, event.ScopeRow{
			Key:       key,
			Year:      2025,
			StartDate: date("2025-03-10"),
			EndDate:   date("2025-03-12"),
		})
	}
	return rows
}

func TestSyncTeamsWalksPagesUntilEmpty(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{responses: map[string]FetchResult{
		"/teams/0": {Body: []byte(`[{"key":"frc254","team_number":254,"nickname":"The Cheesy Poofs","name":"NASA"},{"key":"frc1114","team_number":1114,"nickname":"Simbotics","name":"Innovation First"}]`), ETag: `W/"p0"`},
		"/teams/1": {Body: []byte(`[{"key":"frc148","team_number":148,"nickname":"Robowranglers","name":"Innovation First"}]`), ETag: `W/"p1"`},
		"/teams/2": {Body: []byte(`[]`)},
	}}
	store := &fakeStore{}
	svc := newTestSyncService(fetcher, store, 50, testNow())

	if err := svc.SyncTeams(context.Background()); err != nil {
		t.Fatalf("SyncTeams: %v", err)
	}

	if len(fetcher.calls) != 3 {
		t.Fatalf("fetched %d pages, want 3 (stop at first empty)", len(fetcher.calls))
	}
	if len(store.teamBatches) != 2 {
		t.Fatalf("upserted %d batches, want 2", len(store.teamBatches))
	}
	if len(store.teamBatches[0]) != 2 || len(store.teamBatches[1]) != 1 {
		t.Fatalf("batch sizes = %d,%d, want 2,1", len(store.teamBatches[0]), len(store.teamBatches[1]))
	}
	if len(store.etagBatches) != 2 {
		t.Fatalf("saved %d validator batches, want 2 (none for the empty page)", len(store.etagBatches))
	}
	if store.etagBatches[0][0].Endpoint != "/teams/0" || store.etagBatches[0][0].ETag != `W/"p0"` {
		t.Fatalf("unexpected first validator: %+v", store.etagBatches[0][0])
	}
}

func TestSyncTeamsCacheHitMovesToNextPage(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{responses: map[string]FetchResult{
		"/teams/0": {NotModified: true},
		"/teams/1": {Body: []byte(`[]`)},
	}}
	store := &fakeStore{cached: map[string]string{"/teams/0": `W/"cached-0"`}}
	svc := newTestSyncService(fetcher, store, 50, testNow())

	if err := svc.SyncTeams(context.Background()); err != nil {
		t.Fatalf("SyncTeams: %v", err)
	}

	if len(fetcher.calls) != 2 {
		t.Fatalf("fetched %d pages, want 2", len(fetcher.calls))
	}
	if fetcher.calls[0].etag != `W/"cached-0"` {
		t.Fatalf("first fetch sent validator %q, want cached one", fetcher.calls[0].etag)
	}
	if len(store.teamBatches) != 0 {
		t.Fatalf("cache hit must not upsert, got %d batches", len(store.teamBatches))
	}
}

func TestSyncTeamsPropagatesFetchError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("provider status=401")
	fetcher := &fakeFetcher{errs: map[string]error{"/teams/0": wantErr}}
	store := &fakeStore{}
	svc := newTestSyncService(fetcher, store, 50, testNow())

	err := svc.SyncTeams(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("SyncTeams error = %v, want wrapped %v", err, wantErr)
	}
	if len(store.teamBatches) != 0 {
		t.Fatal("no rows may be written after a fetch failure")
	}
}

func TestSyncEventTeamsDropsGhostsAndBatches(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{responses: map[string]FetchResult{
		"/event/2025aaa/teams": {
			Body: []byte(`[{"key":"frc254","team_number":254},{"key":"frc7777","team_number":7777}]`),
			ETag: `W/"a"`,
		},
		"/event/2025bbb/teams": {
			Body: []byte(`[{"key":"frc1114","team_number":1114}]`),
			ETag: `W/"b"`,
		},
		"/event/2025ccc/teams": {NotModified: true},
	}}
	store := &fakeStore{
		teamKeys:  []string{"frc254", "frc1114"},
		scopeRows: pastScopeRows("2025aaa", "2025bbb", "2025ccc"),
		cached:    map[string]string{"/event/2025ccc/teams": `W/"c"`},
	}
	svc := newTestSyncService(fetcher, store, 2, testNow())

	if err := svc.SyncEventTeams(context.Background(), TierFull); err != nil {
		t.Fatalf("SyncEventTeams: %v", err)
	}

	if len(store.participationBatches) != 1 {
		t.Fatalf("flushed %d participation batches, want 1", len(store.participationBatches))
	}
	rows := store.participationBatches[0]
	if len(rows) != 2 {
		t.Fatalf("kept %d participations, want 2 (ghost frc7777 dropped)", len(rows))
	}
	for _, row := range rows {
		if row.TeamKey == "frc7777" {
			t.Fatalf("ghost participation survived: %+v", row)
		}
	}

	if len(store.etagBatches) != 1 || len(store.etagBatches[0]) != 2 {
		t.Fatalf("validator batches = %+v, want one batch of 2", store.etagBatches)
	}

	if fetcher.calls[2].etag != `W/"c"` {
		t.Fatalf("bulk-loaded validator not sent for third event, got %q", fetcher.calls[2].etag)
	}
}

func TestSyncMatchesFlushesParentsBeforeChildren(t *testing.T) {
	t.Parallel()

	body := `[{
		"key": "2025aaa_qm1",
		"comp_level": "qm",
		"set_number": 1,
		"match_number": 1,
		"winning_alliance": "red",
		"event_key": "2025aaa",
		"alliances": {
			"red": {"score": 92, "team_keys": ["frc254", "frc1114", "frc148"]},
			"blue": {"score": 80, "team_keys": ["frc2056", "frc1678", "frc4414"]}
		}
	}]`
	fetcher := &fakeFetcher{responses: map[string]FetchResult{
		"/event/2025aaa/matches": {Body: []byte(body), ETag: `W/"m"`},
	}}
	store := &fakeStore{
		teamKeys:  []string{"frc254", "frc1114", "frc148", "frc2056", "frc1678"},
		scopeRows: pastScopeRows("2025aaa"),
	}
	svc := newTestSyncService(fetcher, store, 50, testNow())

	if err := svc.SyncMatches(context.Background(), TierFull); err != nil {
		t.Fatalf("SyncMatches: %v", err)
	}

	if len(store.matchBatches) != 1 || len(store.matchBatches[0]) != 1 {
		t.Fatalf("match batches = %+v, want one batch of 1", store.matchBatches)
	}
	if len(store.matchAllianceBatches[0]) != 2 {
		t.Fatalf("alliance rows = %d, want 2", len(store.matchAllianceBatches[0]))
	}
	if got := len(store.matchTeamBatches[0]); got != 5 {
		t.Fatalf("participant rows = %d, want 5 (ghost frc4414 dropped)", got)
	}

	tail := store.calls[len(store.calls)-4:]
	want := []string{"upsert_matches", "upsert_match_alliances", "upsert_match_alliance_teams", "upsert_etags"}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("flush order = %v, want %v", tail, want)
		}
	}
}

func TestSyncEventsWritesDistrictsBeforeEvents(t *testing.T) {
	t.Parallel()

	body := `[{
		"key": "2026mndu",
		"name": "Lake Superior Regional",
		"event_code": "mndu",
		"event_type": 0,
		"event_type_string": "Regional",
		"year": 2026,
		"week": 1,
		"start_date": "2026-03-04",
		"end_date": "2026-03-07",
		"district": {"key": "2026fim", "abbreviation": "fim", "display_name": "FIRST In Michigan", "year": 2026}
	}]`
	fetcher := &fakeFetcher{responses: map[string]FetchResult{
		"/events/2026": {Body: []byte(body), ETag: `W/"e"`},
	}}
	store := &fakeStore{}
	svc := newTestSyncService(fetcher, store, 50, testNow())

	if err := svc.SyncEvents(context.Background(), TierYear); err != nil {
		t.Fatalf("SyncEvents: %v", err)
	}

	if len(store.districtBatches) != 1 || len(store.eventBatches) != 1 {
		t.Fatalf("district batches = %d, event batches = %d, want 1,1", len(store.districtBatches), len(store.eventBatches))
	}
	var districtIdx, eventIdx int
	for i, call := range store.calls {
		switch call {
		case "upsert_districts":
			districtIdx = i
		case "upsert_events":
			eventIdx = i
		}
	}
	if districtIdx > eventIdx {
		t.Fatalf("districts written after events: %v", store.calls)
	}
	if got := store.eventBatches[0][0].DistrictKey; got == nil || *got != "2026fim" {
		t.Fatalf("event district key = %v, want 2026fim", got)
	}
}

func TestRunLiveSkipsWhenNoActiveEvents(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	store := &fakeStore{scopeRows: pastScopeRows("2025aaa")}
	svc := newTestSyncService(fetcher, store, 50, testNow())

	if err := svc.RunLive(context.Background()); err != nil {
		t.Fatalf("RunLive: %v", err)
	}
	if len(fetcher.calls) != 0 {
		t.Fatalf("live run with no active events fetched %d endpoints, want 0", len(fetcher.calls))
	}
}
