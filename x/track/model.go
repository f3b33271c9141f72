package track

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

const (
	// Cooldown is the minimum time between two automatic sweeps of the
	// same track, in seconds.
	Cooldown = 86400

	maxTextLength = 128
)

var isTrackID = regexp.MustCompile(`^[A-Za-z0-9_\-.:]{1,64}$`).MatchString

// ValidateTrackID returns an error if id cannot identify a track.
func ValidateTrackID(id string) error {
	if id == "" {
		return errors.Wrap(errors.ErrEmpty, "track id")
	}
	if !isTrackID(id) {
		return errors.Wrapf(errors.ErrInput, "track id %q", id)
	}
	return nil
}

// TrackStatus is the lifecycle state of a track.
type TrackStatus int32

const (
	Active TrackStatus = iota + 1
	Paused
	Terminated
)

var statusNames = map[TrackStatus]string{
	Active:     "active",
	Paused:     "paused",
	Terminated: "terminated",
}

func (s TrackStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate returns an error if this is not a known status.
func (s TrackStatus) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrInput, "status %d", s)
	}
	return nil
}

// ParseTrackStatus returns the status of given name.
func ParseTrackStatus(name string) (TrackStatus, error) {
	name = strings.ToLower(name)
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown status %q", name)
}

func (s TrackStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TrackStatus) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	parsed, err := ParseTrackStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Track is the revenue ledger of a single media track.
type Track struct {
	TrackID string `json:"track_id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`

	TotalStreams uint64 `json:"total_streams"`
	// RevenuePerStream has 6 decimal places.
	RevenuePerStream   uint64 `json:"revenue_per_stream"`
	TotalRevenue       uint64 `json:"total_revenue"`
	DistributedRevenue uint64 `json:"distributed_revenue"`

	LastDistribution royalty.UnixTime `json:"last_distribution"`
	CreationTime     royalty.UnixTime `json:"creation_time"`
	Status           TrackStatus      `json:"status"`

	ArtistPool   RoyaltyPool `json:"artist_pool"`
	ProducerPool RoyaltyPool `json:"producer_pool"`
	LabelPool    RoyaltyPool `json:"label_pool"`
	PlatformPool RoyaltyPool `json:"platform_pool"`
}

var _ orm.Model = (*Track)(nil)

// NewTrack returns an active track with the default pools and zeroed
// counters. A new track was never distributed, so the first automatic
// sweep is not subject to the cooldown.
func NewTrack(id, title, artist string, totalStreams, revenuePerStream uint64, now royalty.UnixTime) *Track {
	t := &Track{
		TrackID:          id,
		Title:            title,
		Artist:           artist,
		TotalStreams:     totalStreams,
		RevenuePerStream: revenuePerStream,
		CreationTime:     now,
		Status:           Active,
	}
	t.ArtistPool, t.ProducerPool, t.LabelPool, t.PlatformPool = DefaultPools()
	return t
}

func (t *Track) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", ValidateTrackID(t.TrackID))
	if len(t.Title) > maxTextLength {
		errs = errors.Append(errs, errors.Field("Title", errors.ErrInput, "too long"))
	}
	if len(t.Artist) > maxTextLength {
		errs = errors.Append(errs, errors.Field("Artist", errors.ErrInput, "too long"))
	}
	if t.DistributedRevenue > t.TotalRevenue {
		errs = errors.Append(errs,
			errors.Field("DistributedRevenue", errors.ErrState, "exceeds total revenue"))
	}
	errs = errors.AppendField(errs, "CreationTime", t.CreationTime.Validate())
	errs = errors.AppendField(errs, "LastDistribution", t.LastDistribution.Validate())
	errs = errors.AppendField(errs, "Status", t.Status.Validate())
	for _, rt := range RecipientTypes {
		if p := t.pool(rt); p.Percentage > BasisPoints {
			errs = errors.Append(errs,
				errors.Field(rt.String()+"Pool", errors.ErrInput, "percentage above %d", BasisPoints))
		}
	}
	return errs
}

// Pool returns the pool of given recipient type.
func (t *Track) Pool(rt RecipientType) (*RoyaltyPool, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return t.pool(rt), nil
}

func (t *Track) pool(rt RecipientType) *RoyaltyPool {
	switch rt {
	case Artist:
		return &t.ArtistPool
	case Producer:
		return &t.ProducerPool
	case Label:
		return &t.LabelPool
	case Platform:
		return &t.PlatformPool
	}
	return nil
}

// PercentageSum returns the sum of all pool percentages. It equals
// BasisPoints unless disputes changed the split.
func (t *Track) PercentageSum() uint64 {
	var sum uint64
	for _, rt := range RecipientTypes {
		sum += t.pool(rt).Percentage
	}
	return sum
}

// TotalPending returns the sum of pending balances of all pools.
func (t *Track) TotalPending() uint64 {
	var sum uint64
	for _, rt := range RecipientTypes {
		sum += t.pool(rt).Pending
	}
	return sum
}

// RecordStreams registers additional streams. Revenue is boosted by the
// performance of the track and split between the pools. It returns the
// adjusted revenue and the boost used.
func (t *Track) RecordStreams(additional uint64, now royalty.UnixTime) (revenue, boost uint64, err error) {
	next := *t
	if next.TotalStreams, err = addU64(t.TotalStreams, additional); err != nil {
		return 0, 0, errors.Wrap(err, "total streams")
	}
	raw, err := mulU64(additional, t.RevenuePerStream)
	if err != nil {
		return 0, 0, errors.Wrap(err, "revenue")
	}
	boost = PerformanceBoost(next.TotalStreams, t.CreationTime, now)
	if revenue, err = basisPoints(raw, boost); err != nil {
		return 0, 0, errors.Wrap(err, "boosted revenue")
	}
	if next.TotalRevenue, err = addU64(t.TotalRevenue, revenue); err != nil {
		return 0, 0, errors.Wrap(err, "total revenue")
	}
	for _, rt := range RecipientTypes {
		p := next.pool(rt)
		share, err := p.Share(revenue)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "%s share", rt)
		}
		if err := p.Accrue(share); err != nil {
			return 0, 0, errors.Wrapf(err, "%s pool", rt)
		}
	}
	*t = next
	return revenue, boost, nil
}

// Payout closes the pending balance of a pool after paid was transferred
// to the recipient. Whatever remains pending above paid is the protocol
// fee and leaves the pool.
func (t *Track) Payout(rt RecipientType, paid uint64, now royalty.UnixTime) error {
	next := *t
	p, err := next.Pool(rt)
	if err != nil {
		return err
	}
	if p.Pending == 0 {
		return errors.Wrapf(ErrNoPending, "%s pool", rt)
	}
	if paid > p.Pending {
		return errors.Wrapf(errors.ErrAmount, "paid %d above pending %d", paid, p.Pending)
	}
	if p.Distributed, err = addU64(p.Distributed, paid); err != nil {
		return errors.Wrapf(err, "%s distributed", rt)
	}
	p.Pending = 0
	if next.DistributedRevenue, err = addU64(t.DistributedRevenue, paid); err != nil {
		return errors.Wrap(err, "distributed revenue")
	}
	next.LastDistribution = now
	*t = next
	return nil
}

// CooldownElapsed returns true if an automatic sweep is allowed at now.
func (t *Track) CooldownElapsed(now royalty.UnixTime) bool {
	return now.Sub(t.LastDistribution) >= Cooldown
}

// Sweep moves the pending balance of every pool to distributed without a
// fee. It returns the total moved. The last distribution time is updated
// only if anything was moved.
func (t *Track) Sweep(now royalty.UnixTime) (uint64, error) {
	next := *t
	var total uint64
	for _, rt := range RecipientTypes {
		moved, err := next.pool(rt).Drain()
		if err != nil {
			return 0, errors.Wrapf(err, "%s pool", rt)
		}
		if total, err = addU64(total, moved); err != nil {
			return 0, errors.Wrap(err, "sweep total")
		}
	}
	if total == 0 {
		return 0, nil
	}
	var err error
	if next.DistributedRevenue, err = addU64(t.DistributedRevenue, total); err != nil {
		return 0, errors.Wrap(err, "distributed revenue")
	}
	next.LastDistribution = now
	*t = next
	return total, nil
}

// MovePending moves amount of pending balance between two pools. It
// returns false and changes nothing if the source pool does not hold
// enough.
func (t *Track) MovePending(from, to RecipientType, amount uint64) (bool, error) {
	next := *t
	src, err := next.Pool(from)
	if err != nil {
		return false, err
	}
	dst, err := next.Pool(to)
	if err != nil {
		return false, err
	}
	if from == to {
		return false, errors.Wrap(errors.ErrInput, "source and destination pool are the same")
	}
	if !src.Reserve(amount) {
		return false, nil
	}
	if err := dst.Accrue(amount); err != nil {
		return false, err
	}
	*t = next
	return true, nil
}

// SetStatus changes the lifecycle state. A terminated track cannot change
// its status anymore.
func (t *Track) SetStatus(s TrackStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if t.Status == Terminated {
		return errors.Wrap(errors.ErrImmutable, "track is terminated")
	}
	if t.Status == s {
		return errors.Wrapf(errors.ErrState, "track is already %s", s)
	}
	t.Status = s
	return nil
}

// Bucket stores tracks under their ID.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for tracks indexed by artist.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket("track", &Track{},
			orm.WithIndex("artist", artistIndexer, false)),
	}
}

func artistIndexer(m orm.Model) ([]byte, error) {
	t, ok := m.(*Track)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if t.Artist == "" {
		return nil, nil
	}
	return []byte(t.Artist), nil
}

// Get returns the track of given ID.
func (b Bucket) Get(db royalty.ReadOnlyKVStore, id string) (*Track, error) {
	var t Track
	if err := b.One(db, []byte(id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save stores the track under its ID.
func (b Bucket) Save(db royalty.KVStore, t *Track) error {
	return b.Put(db, []byte(t.TrackID), t)
}

// Create stores a new track. ErrDuplicate is returned if the ID is taken.
func (b Bucket) Create(db royalty.KVStore, t *Track) error {
	switch err := b.Has(db, []byte(t.TrackID)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "track %q", t.TrackID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Save(db, t)
}

// ByArtist returns all tracks of given artist.
func (b Bucket) ByArtist(db royalty.ReadOnlyKVStore, artist string) ([]*Track, error) {
	var tracks []*Track
	if _, err := b.ByIndex(db, "artist", []byte(artist), &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}
