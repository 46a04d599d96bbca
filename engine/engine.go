// Package engine holds the configuration state of one form editing session:
// the tree itself, the section-scoped partial updates that mutate it, its
// hydration and persistence lifecycle, and the asset upload pipeline that
// writes back into it. One engine instance belongs to exactly one session.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Nwakakukaks/mont/handoff"
	"github.com/Nwakakukaks/mont/models"
	"github.com/Nwakakukaks/mont/store"
	"github.com/Nwakakukaks/mont/uploads"
)

// ErrNoStore is returned by the persistence operations of an engine built
// without a Store.
var ErrNoStore = errors.New("engine: no store configured")

// IdentityFunc resolves the authenticated user id for a mutating call, or ""
// when nobody is logged in.
type IdentityFunc func(ctx context.Context) string

// Notifier surfaces the outcome of gateway calls to the user.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// Options wires an engine to its collaborators. Every field may be left nil:
// persistence calls on an engine without a Store return ErrNoStore, and the
// other collaborators degrade to no-ops.
type Options struct {
	Store    store.Store
	Uploader uploads.Uploader
	Handoff  handoff.Slot
	Session  string
	Identity IdentityFunc
	Notifier Notifier
	Logger   *logrus.Entry
}

// Engine owns one configuration tree. All reads hand out copies; all writes
// go through the section merger.
type Engine struct {
	mu       sync.Mutex
	state    models.FormState
	formDate time.Time

	forms           []models.FormListEntry
	onboardingForms []models.FormListEntry

	view      View
	uploadsWG sync.WaitGroup

	store    store.Store
	uploader uploads.Uploader
	identity IdentityFunc
	notify   Notifier
	log      *logrus.Entry
}

// New constructs the engine and runs the hydration bootstrap: if the session
// handoff slot holds a payload it is adopted as the initial tree and deleted,
// otherwise the tree starts from defaults. The payload is consumed by at most
// one engine instance.
func New(ctx context.Context, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	notify := opts.Notifier
	if notify == nil {
		notify = logNotifier{log: log}
	}

	identity := opts.Identity
	if identity == nil {
		identity = func(context.Context) string { return "" }
	}

	return &Engine{
		state:    bootstrap(ctx, opts.Handoff, opts.Session, log),
		formDate: time.Now(),
		view:     defaultView(),
		store:    opts.Store,
		uploader: opts.Uploader,
		identity: identity,
		notify:   notify,
		log:      log,
	}
}

// Snapshot returns a deep copy of the current tree.
func (e *Engine) Snapshot() models.FormState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneState(e.state)
}

// UpdatedAt reports when the tree was last persisted or loaded.
func (e *Engine) UpdatedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formDate
}

// UpdateSection merges the partial's top-level keys into the named section
// and returns a snapshot of the resulting tree. Sections other than the named
// one are untouched. No validation happens here beyond the section's declared
// shape.
func (e *Engine) UpdateSection(section Section, partial Partial) (models.FormState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := cloneState(e.state)

	var err error
	switch section {
	case SectionForm:
		err = mergeInto(&next.Form, partial)
	case SectionDesign:
		err = mergeInto(&next.Design, partial)
	case SectionWelcome:
		err = mergeInto(&next.Welcome, partial)
	case SectionResponse:
		err = mergeInto(&next.Response, partial)
	case SectionCustomer:
		if err = mergeInto(&next.Customer, partial); err == nil {
			// A replaced fields map may have grown or shrunk; keep the
			// respondent input map on the same key set.
			models.SyncInputKeys(&next)
		}
	case SectionCustomerInputs:
		err = mergeInputs(next.Customer.Fields, next.CustomerInputs, partial)
	case SectionThanks:
		err = mergeInto(&next.Thanks, partial)
	case SectionSocialHandle:
		err = mergeInto(&next.SocialHandle, partial)
	default:
		err = fmt.Errorf("engine: unknown section %q", section)
	}
	if err != nil {
		return models.FormState{}, err
	}

	e.state = next
	return cloneState(next), nil
}

// mergeInputs writes respondent values. Keys without a matching field rule
// are dropped so customer.fields and customerInputs keep the same key set
// after any sequence of updates.
func mergeInputs(rules map[string]models.FieldRule, inputs map[string]string, partial Partial) error {
	for key, value := range partial {
		if _, ok := rules[key]; !ok {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("engine: merge key %q: %w", key, err)
		}
		var s string
		if err := json.Unmarshal(encoded, &s); err != nil {
			return fmt.Errorf("engine: customerInputs.%s must be a string", key)
		}
		inputs[key] = s
	}
	return nil
}

func (e *Engine) UpdateForm(partial Partial) (models.FormState, error) {
	return e.UpdateSection(SectionForm, partial)
}

func (e *Engine) UpdateDesign(partial Partial) (models.FormState, error) {
	return e.UpdateSection(SectionDesign, partial)
}

func (e *Engine) UpdateWelcome(partial Partial) (models.FormState, error) {
	return e.UpdateSection(SectionWelcome, partial)
}

func (e *Engine) UpdateResponse(partial Partial) (models.FormState, error) {
	return e.UpdateSection(SectionResponse, partial)
}

func (e *Engine) UpdateCustomerInputs(partial Partial) (models.FormState, error) {
	return e.UpdateSection(SectionCustomerInputs, partial)
}

func (e *Engine) UpdateSocialHandle(partial Partial) (models.FormState, error) {
	return e.UpdateSection(SectionSocialHandle, partial)
}

// SetRating writes the respondent's star rating into the response section.
func (e *Engine) SetRating(rating int) (models.FormState, error) {
	return e.UpdateSection(SectionResponse, Partial{"rating": rating})
}

// SaveForm persists the whole tree into the forms table.
func (e *Engine) SaveForm(ctx context.Context) error {
	return e.save(ctx, store.TableForms)
}

// SaveOnboardingForm persists the whole tree into the onboarding table.
func (e *Engine) SaveOnboardingForm(ctx context.Context) error {
	return e.save(ctx, store.TableOnboarding)
}

func (e *Engine) save(ctx context.Context, table store.Table) error {
	if e.store == nil {
		return ErrNoStore
	}
	user := e.identity(ctx)
	if user == "" {
		e.log.Warn("save rejected: not authenticated")
		e.notify.Error("Error", "Failed to save form")
		return store.ErrUnauthenticated
	}

	e.mu.Lock()
	snapshot := cloneState(e.state)
	e.mu.Unlock()

	id := snapshot.Form.ID
	if id == "" {
		id = uuid.NewString()
	}
	snapshot.Form.ID = id
	snapshot.Form.CreatorID = user

	rec := &models.FormRecord{
		ID:      id,
		Title:   snapshot.Form.Title,
		OwnerID: user,
		State:   snapshot,
	}

	if err := e.store.Save(ctx, table, rec); err != nil {
		e.log.WithError(err).Error("saving form")
		e.notify.Error("Error", "Failed to save form")
		return err
	}

	// First successful save fixes the id for the life of the form.
	e.mu.Lock()
	if e.state.Form.ID == "" {
		e.state.Form.ID = id
	}
	e.state.Form.CreatorID = user
	e.formDate = rec.UpdatedAt
	e.mu.Unlock()

	e.notify.Success("Success", "Changes saved successfully")
	return nil
}

// LoadForm resolves the id through the fallback chain (forms first, then
// onboarding_forms) and adopts the stored tree. On store.ErrNotFound neither
// table had the form.
func (e *Engine) LoadForm(ctx context.Context, id string) error {
	if e.store == nil {
		return ErrNoStore
	}
	rec, _, err := e.store.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.log.WithField("id", id).Info("no form found with the given id")
		} else {
			e.log.WithError(err).Error("loading form")
		}
		return err
	}

	models.Normalize(&rec.State)

	e.mu.Lock()
	e.state = rec.State
	e.formDate = rec.UpdatedAt
	e.mu.Unlock()
	return nil
}

// LoadForms refreshes the cached list of forms owned by the current user.
func (e *Engine) LoadForms(ctx context.Context) ([]models.FormListEntry, error) {
	entries, err := e.list(ctx, store.TableForms)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.forms = entries
	e.mu.Unlock()
	return entries, nil
}

// LoadOnboardingForms refreshes the cached onboarding-form list.
func (e *Engine) LoadOnboardingForms(ctx context.Context) ([]models.FormListEntry, error) {
	entries, err := e.list(ctx, store.TableOnboarding)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.onboardingForms = entries
	e.mu.Unlock()
	return entries, nil
}

func (e *Engine) list(ctx context.Context, table store.Table) ([]models.FormListEntry, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	user := e.identity(ctx)
	if user == "" {
		return nil, store.ErrUnauthenticated
	}
	entries, err := e.store.ListByOwner(ctx, table, user)
	if err != nil {
		e.log.WithError(err).Error("loading forms")
		return nil, err
	}
	return entries, nil
}

// Forms returns the list cached by the last LoadForms call.
func (e *Engine) Forms() []models.FormListEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.FormListEntry{}, e.forms...)
}

// OnboardingForms returns the list cached by the last LoadOnboardingForms call.
func (e *Engine) OnboardingForms() []models.FormListEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.FormListEntry{}, e.onboardingForms...)
}

// DeleteForm removes a form owned by the current user from the forms table.
func (e *Engine) DeleteForm(ctx context.Context, id string) error {
	return e.delete(ctx, store.TableForms, id)
}

// DeleteOnboardingForm removes a form from the onboarding table.
func (e *Engine) DeleteOnboardingForm(ctx context.Context, id string) error {
	return e.delete(ctx, store.TableOnboarding, id)
}

func (e *Engine) delete(ctx context.Context, table store.Table, id string) error {
	if e.store == nil {
		return ErrNoStore
	}
	user := e.identity(ctx)
	if user == "" {
		e.log.Warn("delete rejected: not authenticated")
		e.notify.Error("Error", "Failed to delete form")
		return store.ErrUnauthenticated
	}

	if err := e.store.DeleteByID(ctx, table, id, user); err != nil {
		e.log.WithError(err).Error("deleting form")
		e.notify.Error("Error", "Failed to delete form")
		return err
	}

	e.notify.Success("Success", "Form deleted successfully")
	return nil
}

type logNotifier struct {
	log *logrus.Entry
}

func (n logNotifier) Success(title, description string) {
	n.log.WithField("title", title).Info(description)
}

func (n logNotifier) Error(title, description string) {
	n.log.WithField("title", title).Warn(description)
}
