package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RubachokBoss/worker-portal/internal/models"
	"github.com/RubachokBoss/worker-portal/internal/repository"
)

type fakeWork struct {
	work       models.Work
	assignedTo int64
}

// memStore is an in-memory stand-in for the PostgreSQL store. It enforces the
// workers_email_key constraint and counts borrowed connections.
type memStore struct {
	mu sync.Mutex

	workers     map[int64]*models.Worker
	works       map[int64]*fakeWork
	submissions map[int64]*models.Submission

	nextWorkerID     int64
	nextSubmissionID int64
	clock            time.Time

	// failure injection
	acquireErr     error
	queryErr       error
	markErr        error
	blindEmailScan bool

	acquired int
	released int
}

func newMemStore() *memStore {
	return &memStore{
		workers:     make(map[int64]*models.Worker),
		works:       make(map[int64]*fakeWork),
		submissions: make(map[int64]*models.Submission),
		clock:       time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) WithConn(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if s.acquireErr != nil {
		return s.acquireErr
	}
	s.acquired++
	defer func() { s.released++ }()

	return fn(repository.Repositories{
		Workers:     &memWorkerRepo{s},
		Works:       &memWorkRepo{s},
		Submissions: &memSubmissionRepo{s},
	})
}

func (s *memStore) Ping(ctx context.Context) error {
	return s.acquireErr
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memStore) addWork(id, assignedTo int64, title string) {
	s.works[id] = &fakeWork{
		work: models.Work{
			ID:           id,
			Title:        title,
			Description:  title + " description",
			DateAssigned: "2024-05-01",
			Status:       models.WorkStatusAssigned.String(),
		},
		assignedTo: assignedTo,
	}
}

type memWorkerRepo struct{ s *memStore }

func (r *memWorkerRepo) Create(ctx context.Context, w *models.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return r.s.queryErr
	}
	for _, existing := range r.s.workers {
		if existing.Email == w.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.s.nextWorkerID++
	w.ID = r.s.nextWorkerID
	w.CreatedAt = r.s.tick()
	w.UpdatedAt = w.CreatedAt
	stored := *w
	r.s.workers[w.ID] = &stored
	return nil
}

func (r *memWorkerRepo) GetByID(ctx context.Context, id int64) (*models.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return nil, r.s.queryErr
	}
	w, ok := r.s.workers[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWorkerRepo) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return nil, r.s.queryErr
	}
	for _, w := range r.s.workers {
		if w.Email == email {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWorkerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	w, err := r.GetByID(ctx, id)
	return w != nil, err
}

func (r *memWorkerRepo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return false, r.s.queryErr
	}
	if r.s.blindEmailScan {
		return false, nil
	}
	for id, w := range r.s.workers {
		if w.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWorkerRepo) UpdateProfile(ctx context.Context, w *models.Worker) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, other := range r.s.workers {
		if id != w.ID && other.Email == w.Email {
			return false, repository.ErrDuplicateEmail
		}
	}
	stored, ok := r.s.workers[w.ID]
	if !ok {
		return false, nil
	}
	stored.FullName = w.FullName
	stored.Email = w.Email
	stored.Phone = w.Phone
	stored.Address = w.Address
	stored.UpdatedAt = r.s.tick()
	return true, nil
}

type memWorkRepo struct{ s *memStore }

func (r *memWorkRepo) ListByWorker(ctx context.Context, workerID int64) ([]models.Work, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return nil, r.s.queryErr
	}
	var out []models.Work
	for _, fw := range r.s.works {
		if fw.assignedTo == workerID {
			out = append(out, fw.work)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memWorkRepo) MarkCompleted(ctx context.Context, workID, workerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.markErr != nil {
		return false, r.s.markErr
	}
	fw, ok := r.s.works[workID]
	if !ok || fw.assignedTo != workerID {
		return false, nil
	}
	fw.work.Status = models.WorkStatusCompleted.String()
	return true, nil
}

type memSubmissionRepo struct{ s *memStore }

func (r *memSubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return r.s.queryErr
	}
	r.s.nextSubmissionID++
	sub.ID = r.s.nextSubmissionID
	sub.SubmittedAt = r.s.tick()
	sub.Status = models.SubmissionStatusSubmitted
	stored := *sub
	r.s.submissions[sub.ID] = &stored
	return nil
}

func (r *memSubmissionRepo) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return nil, r.s.queryErr
	}
	sub, ok := r.s.submissions[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *memSubmissionRepo) ListByWorker(ctx context.Context, workerID int64) ([]models.SubmissionWithTask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return nil, r.s.queryErr
	}
	var out []models.SubmissionWithTask
	for _, sub := range r.s.submissions {
		if sub.WorkerID != workerID {
			continue
		}
		row := models.SubmissionWithTask{
			Submission:      *sub,
			TaskTitle:       models.UnknownTaskTitle,
			TaskDescription: models.UnknownTaskDescription,
			TaskStatus:      models.UnknownTaskStatus,
		}
		if fw, ok := r.s.works[sub.WorkID]; ok {
			row.TaskTitle = fw.work.Title
			row.TaskDescription = fw.work.Description
			row.TaskStatus = fw.work.Status
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memSubmissionRepo) UpdateText(ctx context.Context, id int64, text string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.queryErr != nil {
		return false, r.s.queryErr
	}
	sub, ok := r.s.submissions[id]
	if !ok || sub.SubmissionText == text {
		return false, nil
	}
	sub.SubmissionText = text
	sub.SubmittedAt = r.s.tick()
	return true, nil
}

// plainHasher keeps service tests fast; auth has its own argon2 tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain$" + password, nil
}

func (plainHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "plain$"+password, nil
}

func (plainHasher) VerifyDummy(string) {}

type recordedEvent struct {
	routingKey string
	event      models.SubmissionEvent
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishSubmissionEvent(ctx context.Context, routingKey string, event *models.SubmissionEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, recordedEvent{routingKey: routingKey, event: *event})
	return nil
}

func (p *fakePublisher) Close() error { return nil }
