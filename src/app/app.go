package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	m "guest_list_services/src/models"
)

// GuestAPI is the remote store the app reads from and writes to.
type GuestAPI interface {
	ListGuests(ctx context.Context) ([]m.Guest, error)
	CreateGuest(ctx context.Context, guest m.Guest) (m.Guest, error)
	UpdateGuest(ctx context.Context, guest m.Guest) (m.Guest, error)
	DeleteGuest(ctx context.Context, id string) error
}

type Options struct {
	// PersistRemove turns RemoveGuest into a DELETE against the API instead
	// of a local hide that the next load undoes.
	PersistRemove bool
}

// GuestListApp holds the guest list, the name drafts and the loading flag.
// The list is a cache of the API, replaced on every load and addressed by
// server id. All methods are safe for concurrent use; the lock is never held
// across a network call.
type GuestListApp struct {
	api  GuestAPI
	opts Options

	root   context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	guests     map[string]m.Guest
	order      []string
	firstName  string
	lastName   string
	loading    bool
	closed     bool
	loadGen    uint64
	cancelLoad context.CancelFunc
}

func New(api GuestAPI, opts Options) *GuestListApp {
	root, cancel := context.WithCancel(context.Background())

	return &GuestListApp{
		api:     api,
		opts:    opts,
		root:    root,
		cancel:  cancel,
		guests:  make(map[string]m.Guest),
		order:   make([]string, 0),
		loading: true,
	}
}

// Start performs the initial load.
func (a *GuestListApp) Start(ctx context.Context) Result {
	return a.LoadGuestList(ctx)
}

// Close cancels every in-flight call. Nothing they return is applied afterwards.
func (a *GuestListApp) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.cancel()
}

// task derives a context that ends with either ctx or the app.
func (a *GuestListApp) task(ctx context.Context) (context.Context, context.CancelFunc) {
	taskCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(a.root, cancel)

	return taskCtx, func() {
		stop()
		cancel()
	}
}

func (a *GuestListApp) SetFirstName(value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.firstName = value
}

func (a *GuestListApp) SetLastName(value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastName = value
}

func (a *GuestListApp) FirstName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.firstName
}

func (a *GuestListApp) LastName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastName
}

// HandleLastNameKey submits the draft when key is Enter, like the Add Guest button.
func (a *GuestListApp) HandleLastNameKey(ctx context.Context, key string) (Result, bool) {
	if key != "Enter" {
		return Result{}, false
	}
	return a.AddGuest(ctx), true
}

// LoadGuestList replaces the local list with the API's. A newer load cancels
// an older one still in flight, and the older response is dropped.
func (a *GuestListApp) LoadGuestList(ctx context.Context) Result {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return canceled(OpLoad, "app closed")
	}

	a.loadGen++
	gen := a.loadGen
	if a.cancelLoad != nil {
		a.cancelLoad()
	}
	taskCtx, done := a.task(ctx)
	a.cancelLoad = done
	a.mu.Unlock()

	defer done()
	guests, err := a.api.ListGuests(taskCtx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return canceled(OpLoad, "app closed")
	}
	if gen != a.loadGen {
		return canceled(OpLoad, "superseded by a newer load")
	}

	a.cancelLoad = nil
	a.loading = false

	if err != nil {
		log.Printf("%s: %v", OpLoad, err)
		return classify(OpLoad, err)
	}

	a.replaceLocked(guests)
	return ok(OpLoad)
}

func (a *GuestListApp) replaceLocked(guests []m.Guest) {
	a.guests = make(map[string]m.Guest, len(guests))
	a.order = make([]string, 0, len(guests))

	for i, guest := range guests {
		key := guest.ID
		if _, taken := a.guests[key]; key == "" || taken {
			// Keep records without a usable id visible; they just can't be addressed.
			key = fmt.Sprintf("~%d", i)
		}
		a.guests[key] = guest
		a.order = append(a.order, key)
	}
}

// AddGuest posts the trimmed drafts as a new not-attending guest, then clears
// the drafts and reloads. On failure the drafts stay as they were.
func (a *GuestListApp) AddGuest(ctx context.Context) Result {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return canceled(OpAdd, "app closed")
	}
	guest := m.NewGuest(a.firstName, a.lastName)
	a.mu.Unlock()

	return a.createGuest(ctx, guest)
}

// SubmitGuest sets both drafts and adds the guest they describe. The names
// posted are the ones given here even when other submissions run concurrently.
func (a *GuestListApp) SubmitGuest(ctx context.Context, firstName string, lastName string) Result {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return canceled(OpAdd, "app closed")
	}
	a.firstName = firstName
	a.lastName = lastName
	guest := m.NewGuest(firstName, lastName)
	a.mu.Unlock()

	return a.createGuest(ctx, guest)
}

func (a *GuestListApp) createGuest(ctx context.Context, guest m.Guest) Result {
	taskCtx, done := a.task(ctx)
	_, err := a.api.CreateGuest(taskCtx, guest)
	done()

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return canceled(OpAdd, "app closed")
	}
	if err != nil {
		a.mu.Unlock()
		log.Printf("%s: %v", OpAdd, err)
		return classify(OpAdd, err)
	}
	a.firstName = ""
	a.lastName = ""
	a.mu.Unlock()

	// The guest exists now; a failed reload is reported by the load itself.
	a.LoadGuestList(ctx)
	return ok(OpAdd)
}

// ToggleAttending flips the guest's flag on the server, then locally for that id only.
func (a *GuestListApp) ToggleAttending(ctx context.Context, id string) Result {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return canceled(OpToggle, "app closed")
	}
	guest, found := a.guests[id]
	a.mu.Unlock()

	if !found || guest.ID == "" {
		return failed(OpToggle, KindNotFound, fmt.Sprintf("no guest with id %q", id))
	}

	updated := guest
	updated.Attending = !guest.Attending

	taskCtx, done := a.task(ctx)
	_, err := a.api.UpdateGuest(taskCtx, updated)
	done()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return canceled(OpToggle, "app closed")
	}
	if err != nil {
		log.Printf("%s: %v", OpToggle, err)
		return classify(OpToggle, err)
	}

	// A reload may have replaced or dropped the entry meanwhile
	if current, still := a.guests[id]; still {
		current.Attending = updated.Attending
		a.guests[id] = current
	}
	return ok(OpToggle)
}

// RemoveGuest drops the guest from the local list. Unless PersistRemove is
// set nothing is sent to the API, so the next load brings the guest back.
func (a *GuestListApp) RemoveGuest(ctx context.Context, id string) Result {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return canceled(OpRemove, "app closed")
	}
	guest, found := a.guests[id]
	a.mu.Unlock()

	if !found {
		return failed(OpRemove, KindNotFound, fmt.Sprintf("no guest with id %q", id))
	}

	if a.opts.PersistRemove {
		if guest.ID == "" {
			return failed(OpRemove, KindNotFound, fmt.Sprintf("guest %q has no server id", id))
		}

		taskCtx, done := a.task(ctx)
		err := a.api.DeleteGuest(taskCtx, guest.ID)
		done()

		if err != nil {
			a.mu.Lock()
			closed := a.closed
			a.mu.Unlock()
			if closed {
				return canceled(OpRemove, "app closed")
			}
			log.Printf("%s: %v", OpRemove, err)
			return classify(OpRemove, err)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return canceled(OpRemove, "app closed")
	}
	a.removeLocked(id)
	return ok(OpRemove)
}

func (a *GuestListApp) removeLocked(id string) {
	if _, found := a.guests[id]; !found {
		return
	}
	delete(a.guests, id)

	for i, key := range a.order {
		if key == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Loading is true until the first load settles.
func (a *GuestListApp) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Entry pairs a guest with the key the app addresses it by.
type Entry struct {
	Key   string
	Guest m.Guest
}

// Entries returns the current list in order with the keys used by ToggleAttending and RemoveGuest.
func (a *GuestListApp) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]Entry, 0, len(a.order))
	for _, key := range a.order {
		entries = append(entries, Entry{Key: key, Guest: a.guests[key]})
	}
	return entries
}

func (a *GuestListApp) Guests() []m.Guest {
	entries := a.Entries()

	guests := make([]m.Guest, 0, len(entries))
	for _, entry := range entries {
		guests = append(guests, entry.Guest)
	}
	return guests
}

func (a *GuestListApp) Attending() []m.Guest {
	attending, _ := m.PartitionByAttendance(a.Guests())
	return attending
}

func (a *GuestListApp) NotAttending() []m.Guest {
	_, notAttending := m.PartitionByAttendance(a.Guests())
	return notAttending
}
