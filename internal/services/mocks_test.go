package services

import (
	"context"
	"time"

	"agoraun/internal/domain"
)

type mockUserRepository struct {
	users     map[string]*domain.User
	byEmail   map[string]*domain.User
	list      []*domain.User
	created   []*domain.User
	createErr error
	err       error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user-new"
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error { return nil }

type mockGroupRepository struct {
	groups    map[string]*domain.Group
	byName    map[string]*domain.Group
	list      []*domain.Group
	created   []*domain.Group
	createErr error
	err       error
}

func (m *mockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if m.createErr != nil {
		return m.createErr
	}
	group.ID = "group-new"
	m.created = append(m.created, group)
	return nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	group, ok := m.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return group, nil
}

func (m *mockGroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	group, ok := m.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return group, nil
}

func (m *mockGroupRepository) List(ctx context.Context, filter domain.GroupFilter) ([]*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockGroupRepository) Update(ctx context.Context, id string, update domain.GroupUpdate) (*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	group, ok := m.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return group, nil
}

func (m *mockGroupRepository) SetStatus(ctx context.Context, id, status, rejectionReason string) (*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	group, ok := m.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *group
	updated.Status = status
	updated.RejectionReason = rejectionReason
	return &updated, nil
}

func (m *mockGroupRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.groups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.groups, id)
	return nil
}

type addedMembership struct {
	groupID string
	userID  string
	role    string
}

type mockMembershipRepository struct {
	members  map[string][]*domain.GroupMember
	count    int
	added    []addedMembership
	addErr   error
	countErr error
	err      error
}

func (m *mockMembershipRepository) Add(ctx context.Context, groupID, userID, role string, joinedAt time.Time) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, addedMembership{groupID: groupID, userID: userID, role: role})
	return nil
}

func (m *mockMembershipRepository) Remove(ctx context.Context, groupID, userID string) error {
	return m.err
}

func (m *mockMembershipRepository) ListByGroupID(ctx context.Context, groupID string) ([]*domain.GroupMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.members[groupID], nil
}

func (m *mockMembershipRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

type mockEventRepository struct {
	events       map[string]*domain.Event
	list         []*domain.Event
	created      []*domain.Event
	createErr    error
	setStatusErr error
	err          error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	event.ID = "event-new"
	m.created = append(m.created, event)
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (m *mockEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (m *mockEventRepository) SetStatus(ctx context.Context, id, status string) (*domain.Event, error) {
	if m.setStatusErr != nil {
		return nil, m.setStatusErr
	}
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *event
	updated.Status = status
	return &updated, nil
}

type statusUpdate struct {
	participationID string
	status          string
	checkCapacity   bool
}

type mockParticipationRepository struct {
	participations map[string]*domain.Participation
	byEvent        map[string][]*domain.Participation
	byUser         map[string][]*domain.Participation
	registered     []*domain.Participation
	statusUpdates  []statusUpdate
	registerErr    error
	updateErr      error
	err            error
}

func (m *mockParticipationRepository) Register(ctx context.Context, p *domain.Participation) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	p.ID = "part-new"
	m.registered = append(m.registered, p)
	return nil
}

func (m *mockParticipationRepository) GetByID(ctx context.Context, id string) (*domain.Participation, error) {
	p, ok := m.participations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockParticipationRepository) UpdateStatus(ctx context.Context, id, status string, checkCapacity bool) (*domain.Participation, error) {
	m.statusUpdates = append(m.statusUpdates, statusUpdate{participationID: id, status: status, checkCapacity: checkCapacity})
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	p, ok := m.participations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *p
	updated.Status = status
	return &updated, nil
}

func (m *mockParticipationRepository) ListByEventID(ctx context.Context, eventID, status string) ([]*domain.Participation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byEvent[eventID], nil
}

func (m *mockParticipationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Participation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byUser[userID], nil
}

type mockNotificationRepository struct {
	created        []*domain.Notification
	recipients     [][]string
	listByUser     map[string][]*domain.UserNotification
	createErr      error
	markReadErr    error
	listByUserErr  error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domain.Notification, userIDs []string) error {
	if m.createErr != nil {
		return m.createErr
	}
	n.ID = "notif-new"
	m.created = append(m.created, n)
	m.recipients = append(m.recipients, userIDs)
	return nil
}

func (m *mockNotificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.UserNotification, error) {
	if m.listByUserErr != nil {
		return nil, m.listByUserErr
	}
	return m.listByUser[userID], nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	return m.markReadErr
}

type sentNotification struct {
	userIDs   []string
	notifType string
	message   string
}

type mockNotificationService struct {
	sent    []sentNotification
	sendErr error
}

func (m *mockNotificationService) Send(ctx context.Context, userIDs []string, notifType, message string) (*domain.Notification, error) {
	m.sent = append(m.sent, sentNotification{userIDs: userIDs, notifType: notifType, message: message})
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &domain.Notification{ID: "notif-1", Type: notifType, Message: message}, nil
}

func (m *mockNotificationService) ListMine(ctx context.Context, userID string) ([]*domain.UserNotification, error) {
	return nil, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return nil
}

type mockEmailService struct {
	welcomes     []*domain.WelcomeMessageEmailData
	cancellations []*domain.EventCancelledEmailData
	welcomeErr   error
	cancelErr    error
}

func (m *mockEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	m.welcomes = append(m.welcomes, data)
	return m.welcomeErr
}

func (m *mockEmailService) SendEventCancelled(ctx context.Context, data *domain.EventCancelledEmailData) error {
	m.cancellations = append(m.cancellations, data)
	return m.cancelErr
}

type mockCommentRepository struct {
	created   []*domain.Comment
	list      []*domain.Comment
	createErr error
	listErr   error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	comment.ID = "comment-new"
	m.created = append(m.created, comment)
	return nil
}

func (m *mockCommentRepository) List(ctx context.Context, status string) ([]*domain.Comment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

type mockGroupCache struct {
	store        map[string]*domain.Group
	sets         []string
	invalidated  []string
}

func (m *mockGroupCache) Get(ctx context.Context, id string) (*domain.Group, bool) {
	group, ok := m.store[id]
	return group, ok
}

func (m *mockGroupCache) Set(ctx context.Context, group *domain.Group) {
	m.sets = append(m.sets, group.ID)
}

func (m *mockGroupCache) Invalidate(ctx context.Context, id string) {
	m.invalidated = append(m.invalidated, id)
}

type mockHasher struct {
	saltErr    error
	hashErr    error
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.saltErr != nil {
		return "", m.saltErr
	}
	return "salt", nil
}

func (m *mockHasher) Hash(salt, password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hash:" + salt + ":" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hash:"+salt+":"+password {
		return domain.ErrForbidden
	}
	return nil
}

type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}
