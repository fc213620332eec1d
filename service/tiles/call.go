// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package tiles

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/audio"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/speaker"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

var (
	ErrPinLimit     = errors.New("maximum number of pinned participants reached")
	ErrUnknownEvent = errors.New("unknown event")
)

// Call holds the layout state of a single viewer in a call. It is not safe for
// concurrent use: all events must be handled from the same goroutine.
type Call struct {
	cfg      Config
	log      mlog.LoggerIFace
	packer   geometry.Packer
	observer Observer
	metrics  Metrics
	now      func() time.Time

	reconcile func(prev, next []string) []string

	participants []*Participant
	index        map[string]*Participant
	smoothers    map[string]*audio.Smoother
	pendingPins  map[string]struct{}

	publisherSmoother *audio.Smoother
	selector          *speaker.Selector
	talking           *audio.TalkingMonitor
	isTalking         bool

	mode             geometry.LayoutMode
	device           order.DeviceClass
	container        geometry.Dimensions
	camera           geometry.Size
	localScreenshare *geometry.Size

	displayOrder []string
	snapshot     Snapshot
}

func NewCall(cfg Config, log mlog.LoggerIFace, opts ...CallOption) (*Call, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("log should not be nil")
	}

	selector, err := speaker.NewSelector(cfg.Speaker)
	if err != nil {
		return nil, fmt.Errorf("failed to create speaker selector: %w", err)
	}

	c := &Call{
		cfg:               cfg,
		log:               log,
		packer:            geometry.GridPacker{},
		observer:          nopObserver{},
		metrics:           nopMetrics{},
		now:               time.Now,
		reconcile:         order.Reconcile,
		index:             make(map[string]*Participant),
		smoothers:         make(map[string]*audio.Smoother),
		pendingPins:       make(map[string]struct{}),
		publisherSmoother: audio.NewSmoother(),
		selector:          selector,
		mode:              cfg.DefaultLayoutMode,
		device:            order.Desktop,
	}

	c.talking, err = audio.NewTalkingMonitor(cfg.Talking, c.onTalking)
	if err != nil {
		return nil, fmt.Errorf("failed to create talking monitor: %w", err)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	c.update()

	return c, nil
}

// Snapshot returns the result of the last layout pass.
func (c *Call) Snapshot() Snapshot {
	return c.snapshot
}

func (c *Call) Participant(id string) (Participant, bool) {
	p, ok := c.index[id]
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// Participants returns all participants sorted by name, for the participant list.
func (c *Call) Participants() []Participant {
	list := make([]Participant, len(c.participants))
	for i, p := range c.participants {
		list[i] = *p
	}
	return order.SortByName(list, func(p Participant) string { return p.Name })
}

// Level returns the log-scaled audio level of a participant, for meters.
func (c *Call) Level(id string) float64 {
	sm, ok := c.smoothers[id]
	if !ok {
		return 0
	}
	return sm.LogLevel()
}

// Levels returns the log-scaled audio level of every participant.
func (c *Call) Levels() map[string]float64 {
	levels := make(map[string]float64, len(c.smoothers))
	for id, sm := range c.smoothers {
		levels[id] = sm.LogLevel()
	}
	return levels
}

func (c *Call) PublisherLevel() float64 {
	return c.publisherSmoother.LogLevel()
}

// Pins returns the ids of pinned participants followed by the pending ones,
// as they should be persisted.
func (c *Call) Pins() []string {
	pins := slices.Clone(c.snapshot.Pinned)
	pending := make([]string, 0, len(c.pendingPins))
	for id := range c.pendingPins {
		pending = append(pending, id)
	}
	slices.Sort(pending)
	return append(pins, pending...)
}

// Handle applies an event and runs a layout pass. It returns whether the
// resulting snapshot differs from the previous one. Events referring to
// unknown participants are ignored.
func (c *Call) Handle(ev Event) (bool, error) {
	var err error
	switch e := ev.(type) {
	case ParticipantAdded:
		c.addParticipant(e.Participant)
	case ParticipantUpdated:
		c.updateParticipant(e.Participant)
	case ParticipantRemoved:
		c.removeParticipant(e.ParticipantID)
	case AudioLevel:
		c.pushAudioLevel(e)
	case PublisherAudioLevel:
		c.publisherSmoother.Push(e.Level)
		return false, nil
	case PinToggle:
		err = c.togglePin(e.ParticipantID)
	case PinsRestored:
		c.restorePins(e.ParticipantIDs)
	case LayoutModeChanged:
		if err := e.Mode.IsValid(); err != nil {
			return false, err
		}
		c.mode = e.Mode
	case ViewportChanged:
		if err := e.Device.IsValid(); err != nil {
			return false, err
		}
		if e.Container.Width < 0 || e.Container.Height < 0 {
			return false, fmt.Errorf("invalid container dimensions %dx%d", e.Container.Width, e.Container.Height)
		}
		c.device = e.Device
		c.container = e.Container
	case PublisherChanged:
		c.camera = e.Camera
		c.localScreenshare = e.Screenshare
	default:
		return false, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	if err != nil {
		return false, err
	}

	return c.update(), nil
}

// Run handles events from in until ctx is done or in is closed, sending every
// changed snapshot to out. Events failing to apply are logged and skipped.
// The Call must not be used by anyone else while Run is active.
func (c *Call) Run(ctx context.Context, in <-chan Event, out chan<- Snapshot) error {
	for {
		select {
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			changed, err := c.Handle(ev)
			if err != nil {
				c.log.Debug("tiles: failed to handle event", mlog.String("type", string(ev.Type())), mlog.Err(err))
				continue
			}
			if !changed {
				continue
			}
			select {
			case out <- c.snapshot:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Call) stale(ev EventType, participantID string) {
	c.log.Debug("tiles: ignoring event for unknown participant",
		mlog.String("type", string(ev)),
		mlog.String("participantID", participantID))
	c.metrics.IncStaleEvents(string(ev))
}

func (c *Call) addParticipant(p Participant) {
	if p.ID == "" {
		c.log.Debug("tiles: ignoring participant with empty id")
		return
	}

	if _, ok := c.index[p.ID]; ok {
		c.log.Debug("tiles: participant already added, updating", mlog.String("participantID", p.ID))
		c.updateParticipant(p)
		return
	}

	p.IsPinned = false
	if _, ok := c.pendingPins[p.ID]; ok {
		delete(c.pendingPins, p.ID)
		p.IsPinned = c.pinnedCount() < c.maxPins()
	}

	c.participants = append(c.participants, &p)
	c.index[p.ID] = &p
	c.smoothers[p.ID] = audio.NewSmoother()
	c.selector.Track(p.ID)
}

func (c *Call) updateParticipant(p Participant) {
	existing, ok := c.index[p.ID]
	if !ok {
		c.stale(ParticipantUpdatedEvent, p.ID)
		return
	}
	p.IsPinned = existing.IsPinned
	*existing = p
}

func (c *Call) removeParticipant(id string) {
	if _, ok := c.index[id]; !ok {
		c.stale(ParticipantRemovedEvent, id)
		return
	}

	c.participants = slices.DeleteFunc(c.participants, func(p *Participant) bool {
		return p.ID == id
	})
	delete(c.index, id)
	delete(c.smoothers, id)

	if change := c.selector.Remove(id); change != nil {
		c.speakerChanged(*change)
	}
}

func (c *Call) pushAudioLevel(e AudioLevel) {
	sm, ok := c.smoothers[e.ParticipantID]
	if !ok {
		c.stale(AudioLevelEvent, e.ParticipantID)
		return
	}

	at := e.At
	if at.IsZero() {
		at = c.now()
	}

	sm.Push(e.Level)
	change := c.selector.Push(speaker.Sample{
		ParticipantID: e.ParticipantID,
		MovingAverage: sm.MovingAverage(),
	}, at)
	if change != nil {
		c.speakerChanged(*change)
	}

	if e.ParticipantID == c.selector.Current() {
		c.talking.Push(e.Level, at)
	}
}

func (c *Call) speakerChanged(change speaker.Change) {
	var prevID, newID string
	if change.Previous != nil {
		prevID = change.Previous.ID
	}
	if change.New != nil {
		newID = change.New.ID
	}

	c.log.Debug("tiles: active speaker changed",
		mlog.String("previous", prevID),
		mlog.String("current", newID))

	wasTalking := c.isTalking
	c.talking.Reset()
	c.isTalking = false
	if wasTalking && prevID != "" {
		c.observer.TalkingChanged(prevID, false)
	}

	c.metrics.IncActiveSpeakerChanges()
	c.observer.ActiveSpeakerChanged(change)
}

func (c *Call) onTalking(talking bool) {
	c.isTalking = talking
	c.observer.TalkingChanged(c.selector.Current(), talking)
}

func (c *Call) maxPins() int {
	if c.device == order.Mobile {
		return maxPinCountMobile
	}
	return c.cfg.MaxPinCountDesktop
}

func (c *Call) pinnedCount() int {
	var n int
	for _, p := range c.participants {
		if p.IsPinned {
			n++
		}
	}
	return n
}

func (c *Call) togglePin(id string) error {
	p, ok := c.index[id]
	if !ok {
		c.stale(PinToggleEvent, id)
		return nil
	}

	if p.IsPinned {
		p.IsPinned = false
		return nil
	}

	if limit := c.maxPins(); c.pinnedCount() >= limit {
		c.log.Debug("tiles: rejecting pin", mlog.String("participantID", id), mlog.Int("limit", limit))
		c.metrics.IncPinRejections()
		return fmt.Errorf("%w (%d)", ErrPinLimit, limit)
	}

	p.IsPinned = true
	return nil
}

func (c *Call) restorePins(ids []string) {
	for _, id := range ids {
		p, ok := c.index[id]
		if !ok {
			c.pendingPins[id] = struct{}{}
			continue
		}
		if !p.IsPinned && c.pinnedCount() < c.maxPins() {
			p.IsPinned = true
		}
	}
}

// update runs a full layout pass: priority, overflow, reconciliation,
// element building, packing and box destructuring.
func (c *Call) update() bool {
	activeID := c.selector.Current()

	entries := make([]order.Entry, len(c.participants))
	var screenshareInCall, pinnedInCall bool
	var pinned []string
	for i, p := range c.participants {
		entries[i] = p.entry()
		screenshareInCall = screenshareInCall || p.IsScreenshare
		if p.IsPinned {
			pinnedInCall = true
			pinned = append(pinned, p.ID)
		}
	}
	order.SortByPriority(entries, activeID)

	largeTile := screenshareInCall || c.localScreenshare != nil || pinnedInCall ||
		(c.mode == geometry.ActiveSpeaker && len(c.participants) > 0)
	visible, hidden := order.SplitOverflow(order.IDs(entries), c.device, largeTile)

	next := c.reconcile(c.displayOrder, visible)
	if err := order.Verify(next, visible); err != nil {
		c.metrics.IncInvariantViolations()
		if c.cfg.StrictInvariants {
			panic(err)
		}
		c.log.Error("tiles: repairing display order", mlog.Err(err))
		next = order.Clamp(next, visible)
	}
	c.displayOrder = next

	tiles := make([]geometry.Tile, len(next))
	for i, id := range next {
		tiles[i] = c.index[id].tile()
	}

	elements := geometry.Build(geometry.State{
		Publisher:         c.camera,
		Subscribers:       tiles,
		LocalScreenshare:  c.localScreenshare,
		HasHidden:         len(hidden) > 0,
		ActiveSpeakerID:   activeID,
		Mode:              c.mode,
		ScreenshareInCall: screenshareInCall,
		PinnedInCall:      pinnedInCall,
	})

	landscape := c.container.Width >= c.container.Height
	packed := c.packer.Pack(c.container, elements, landscape)
	boxes, err := geometry.Destructure(packed, len(tiles), c.localScreenshare != nil, len(hidden) > 0)
	if err != nil {
		c.log.Error("tiles: failed to map packed boxes", mlog.Err(err))
	}

	snapshot := Snapshot{
		DisplayOrder:  slices.Clone(next),
		Hidden:        slices.Clone(hidden),
		HiddenPreview: slices.Clone(order.HiddenPreview(hidden)),
		Pinned:        pinned,
		ActiveSpeaker: activeID,
		Talking:       c.isTalking,
		Mode:          c.mode,
		Device:        c.device,
		Boxes:         boxes,
	}

	c.metrics.IncLayoutPasses()

	changed := !reflect.DeepEqual(snapshot, c.snapshot)
	c.snapshot = snapshot
	return changed
}
