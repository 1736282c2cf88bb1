package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/event"
	"github.com/warbandhq/warband/internal/model"
	"github.com/warbandhq/warband/internal/season"
)

// DemoOptions controls the size and shape of the generated data.
type DemoOptions struct {
	AllianceName string
	SeasonName   string
	Members      int
	Uploads      int
	WithEvents   bool
	Seed         uint64
}

var groupNames = []string{"Vanguard", "Ironclad", "Stormriders", "Night Watch"}

var namePrefixes = []string{
	"Iron", "Storm", "Shadow", "Crimson", "Silent", "Frost",
	"Ember", "Thorn", "Grim", "Swift", "Ashen", "Raven",
}

var nameSuffixes = []string{
	"blade", "fang", "claw", "heart", "strike", "born",
	"howl", "watch", "brand", "shield", "spear", "veil",
}

// memberSim carries one synthetic member's cumulative in-game counters
// across uploads. joins and leaves are upload indexes; members outside
// [joins, leaves) are omitted from that upload, which is how departures
// appear in real snapshot data.
type memberSim struct {
	id     string
	name   string
	group  string
	joins  int
	leaves int

	contribution int64
	merit        int64
	assist       int64
	donation     int64
	power        int64
}

// Demo creates an alliance with one current season, registers a run of
// snapshot uploads with drifting counters, rebuilds the season, and
// optionally creates and processes one event per category.
func Demo(ctx context.Context, pool *pgxpool.Pool, opts DemoOptions, logger *slog.Logger) Result {
	var result Result

	if opts.Members <= 0 {
		opts.Members = 40
	}
	if opts.Uploads < 2 {
		opts.Uploads = 8
	}
	if opts.AllianceName == "" {
		opts.AllianceName = "Crimson Banner"
	}
	if opts.SeasonName == "" {
		opts.SeasonName = "Season 1"
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))

	// 1. Alliance and season; the first snapshot lands on the start date.
	allianceID := uuid.New()
	seasonID := uuid.New()
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -2*opts.Uploads)

	if _, err := pool.Exec(ctx, `INSERT INTO alliances (id, name) VALUES ($1,$2)`,
		allianceID, opts.AllianceName,
	); err != nil {
		result.AddErrorf("insert alliance: %v", err)
		return result
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO seasons (id, alliance_id, name, start_date, is_current)
		VALUES ($1,$2,$3,$4,TRUE)`,
		seasonID, allianceID, opts.SeasonName, start,
	); err != nil {
		result.AddErrorf("insert season: %v", err)
		return result
	}
	result.AllianceID = allianceID.String()
	result.SeasonID = seasonID.String()
	logger.Info("Seeded alliance", "alliance_id", allianceID, "season_id", seasonID)

	// 2. Roster
	members := buildRoster(rng, opts.Members, opts.Uploads)

	// 3. Uploads
	logger.Info("Seeding uploads...", "count", opts.Uploads, "members", opts.Members)
	var uploads []model.Upload
	date := start
	for k := 0; k < opts.Uploads; k++ {
		if k > 0 {
			date = date.AddDate(0, 0, 1+rng.IntN(2))
		}
		rows := advance(rng, members, k)
		up, err := season.RegisterUpload(ctx, pool, model.Upload{
			SeasonID:     seasonID,
			SnapshotDate: date,
			Label:        fmt.Sprintf("demo %s", date.Format("2006-01-02")),
		}, rows)
		if err != nil {
			result.AddErrorf("register upload %d: %v", k, err)
			continue
		}
		uploads = append(uploads, *up)
		result.Uploads++
		result.Snapshots += len(rows)
	}
	logger.Info("Uploads done", "count", result.Uploads, "snapshots", result.Snapshots)

	// 4. Periods
	res, err := season.Rebuild(ctx, pool, logger, seasonID)
	if err != nil {
		result.AddErrorf("rebuild season: %v", err)
	} else {
		result.Periods = res.Periods
		result.Metrics = res.Metrics
	}

	// 5. Events over the trailing upload pairs
	if opts.WithEvents {
		seedEvents(ctx, pool, logger, allianceID, uploads, &result)
	}

	logger.Info("Demo seed complete", "summary", result.Summary())
	return result
}

func buildRoster(rng *rand.Rand, count, uploadCount int) []*memberSim {
	members := make([]*memberSim, 0, count)
	for i := 0; i < count; i++ {
		m := &memberSim{
			id:     fmt.Sprintf("m%04d", 1000+i),
			name:   memberName(i),
			group:  groupNames[i%len(groupNames)],
			leaves: uploadCount,

			contribution: 800_000 + rng.Int64N(4_000_000),
			merit:        150_000 + rng.Int64N(900_000),
			assist:       40_000 + rng.Int64N(250_000),
			donation:     20_000 + rng.Int64N(120_000),
			power:        900_000 + rng.Int64N(600_000),
		}
		// roughly one in eight joins mid-season, one in ten departs early
		if uploadCount > 2 && rng.IntN(8) == 0 {
			m.joins = 1 + rng.IntN(uploadCount-1)
		}
		if uploadCount > 2 && m.joins == 0 && rng.IntN(10) == 0 {
			m.leaves = 1 + rng.IntN(uploadCount-1)
		}
		members = append(members, m)
	}
	return members
}

// advance moves every active member's counters forward and returns the
// snapshot rows for one upload, ranked by total contribution.
func advance(rng *rand.Rand, members []*memberSim, uploadIdx int) []model.MemberSnapshot {
	active := make([]*memberSim, 0, len(members))
	for _, m := range members {
		if uploadIdx < m.joins || uploadIdx >= m.leaves {
			continue
		}
		if uploadIdx > m.joins {
			m.contribution += 30_000 + rng.Int64N(60_000)
			m.merit += 5_000 + rng.Int64N(20_000)
			m.assist += 1_000 + rng.Int64N(7_000)
			m.donation += 500 + rng.Int64N(2_500)
			m.power += rng.Int64N(28_000) - 8_000
		}
		active = append(active, m)
	}

	sort.Slice(active, func(i, j int) bool { return active[i].contribution > active[j].contribution })

	rows := make([]model.MemberSnapshot, 0, len(active))
	for rank, m := range active {
		state := "normal"
		if uploadIdx == m.joins && uploadIdx > 0 {
			state = "new"
		}
		rows = append(rows, model.MemberSnapshot{
			MemberID:          m.id,
			MemberName:        m.name,
			ContributionRank:  rank + 1,
			TotalContribution: m.contribution,
			TotalMerit:        m.merit,
			TotalAssist:       m.assist,
			TotalDonation:     m.donation,
			PowerValue:        m.power,
			State:             state,
			GroupName:         m.group,
		})
	}
	return rows
}

func seedEvents(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, allianceID uuid.UUID, uploads []model.Upload, result *Result) {
	specs := []struct {
		name     string
		category model.Category
	}{
		{"Border Skirmish", model.CategoryBattle},
		{"Citadel Siege", model.CategorySiege},
		{"Forbidden Grounds Patrol", model.CategoryForbidden},
	}
	for i, spec := range specs {
		if len(uploads) < i+2 {
			return
		}
		before := uploads[len(uploads)-2-i]
		after := uploads[len(uploads)-1-i]
		e, err := event.Create(ctx, pool, model.Event{
			AllianceID:     allianceID,
			Name:           spec.name,
			Category:       spec.category,
			BeforeUploadID: &before.ID,
			AfterUploadID:  &after.ID,
			EventStart:     &before.SnapshotDate,
			EventEnd:       &after.SnapshotDate,
		})
		if err != nil {
			result.AddErrorf("create event %q: %v", spec.name, err)
			continue
		}
		if _, err := event.Process(ctx, pool, logger, e.ID, nil, nil); err != nil {
			result.AddErrorf("process event %q: %v", spec.name, err)
			continue
		}
		result.Events++
	}
}

func memberName(i int) string {
	name := namePrefixes[i%len(namePrefixes)] + nameSuffixes[(i/len(namePrefixes))%len(nameSuffixes)]
	if n := len(namePrefixes) * len(nameSuffixes); i >= n {
		name = fmt.Sprintf("%s%d", name, i/n+1)
	}
	return name
}
