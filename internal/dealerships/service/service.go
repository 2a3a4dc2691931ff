package service

import (
	"context"
	"errors"
	"io"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/domain"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/importer"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/phone"

	"github.com/google/uuid"
)

var (
	ErrDealershipNotFound = errors.New("dealership not found")
	ErrForbidden          = errors.New("forbidden")
	ErrHasOpenDeals       = errors.New("dealership has open deals")
	ErrNameTaken          = errors.New("a dealership with this name already exists")
)

// OpenDealCounter reports open deals for a dealership. Implemented by the
// deals repository; kept narrow so this module does not depend on deal
// internals.
type OpenDealCounter interface {
	CountOpenByDealership(ctx context.Context, dealershipID uuid.UUID) (int, error)
}

type Service struct {
	repo      *repository.Repository
	openDeals OpenDealCounter
	bus       events.Bus
	log       *logger.Logger
}

func New(repo *repository.Repository, openDeals OpenDealCounter, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, openDeals: openDeals, bus: bus, log: log}
}

func (s *Service) Create(ctx context.Context, caller httpkit.Identity, req transport.CreateDealershipRequest) (transport.DealershipResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return transport.DealershipResponse{}, ErrNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return transport.DealershipResponse{}, err
	}

	params := repository.CreateDealershipParams{
		Name:           req.Name,
		Status:         string(domain.StatusProspect),
		MonthlyValue:   req.MonthlyValue,
		AssignedUserID: req.AssignedUserID,
		TerritoryID:    req.TerritoryID,
	}
	if params.AssignedUserID == nil {
		owner := caller.UserID()
		params.AssignedUserID = &owner
	}
	if params.TerritoryID == nil {
		params.TerritoryID = caller.TerritoryID()
	}
	params.Address = optional(req.Address)
	params.City = optional(req.City)
	params.State = optional(req.State)
	params.ZipCode = optional(req.ZipCode)
	params.Website = optional(req.Website)
	params.Source = optional(req.Source)
	if req.Phone != "" {
		normalized := phone.NormalizeE164(req.Phone)
		params.Phone = &normalized
	}

	dealership, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.DealershipResponse{}, err
	}

	return toDealershipResponse(dealership), nil
}

func (s *Service) GetByID(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.DealershipResponse, error) {
	dealership, err := s.visibleDealership(ctx, caller, id)
	if err != nil {
		return transport.DealershipResponse{}, err
	}
	return toDealershipResponse(dealership), nil
}

func (s *Service) List(ctx context.Context, caller httpkit.Identity, req transport.ListDealershipsRequest) ([]transport.DealershipResponse, error) {
	params := repository.ListDealershipsParams{
		Scope:  scopeFor(caller),
		Search: req.Search,
	}
	if req.Status != nil {
		status := string(*req.Status)
		params.Status = &status
	}

	dealerships, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]transport.DealershipResponse, 0, len(dealerships))
	for _, dealership := range dealerships {
		out = append(out, toDealershipResponse(dealership))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateDealershipRequest) (transport.DealershipResponse, error) {
	if _, err := s.visibleDealership(ctx, caller, id); err != nil {
		return transport.DealershipResponse{}, err
	}

	params := repository.UpdateDealershipParams{
		Name:           req.Name,
		MonthlyValue:   req.MonthlyValue,
		AssignedUserID: req.AssignedUserID,
		TerritoryID:    req.TerritoryID,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Website:        req.Website,
		Source:         req.Source,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	dealership, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.DealershipResponse{}, ErrDealershipNotFound
		}
		return transport.DealershipResponse{}, err
	}

	return toDealershipResponse(dealership), nil
}

// UpdateStatus moves a dealership through the account lifecycle. The first
// transition to ACTIVE_CUSTOMER marks it live, stamps the activation time
// and publishes the went-live event. Re-entering ACTIVE_CUSTOMER on a live
// record re-stamps nothing and publishes nothing.
func (s *Service) UpdateStatus(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateDealershipStatusRequest) (transport.DealershipResponse, error) {
	before, err := s.visibleDealership(ctx, caller, id)
	if err != nil {
		return transport.DealershipResponse{}, err
	}

	_, wentLive := domain.LiveTransition(before.IsLive, req.Status)

	dealership, err := s.repo.UpdateStatus(ctx, id, string(req.Status), req.Status.ActivatesLive())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.DealershipResponse{}, ErrDealershipNotFound
		}
		return transport.DealershipResponse{}, err
	}

	if before.Status != dealership.Status {
		userID := caller.UserID()
		if _, err := s.repo.CreateActivity(ctx, repository.CreateActivityParams{
			DealershipID: id,
			UserID:       &userID,
			Type:         "STATUS_CHANGE",
			Description:  "Status changed from " + before.Status + " to " + dealership.Status,
		}); err != nil {
			s.log.Error("record status change activity", "error", err, "dealership_id", id)
		}
	}

	if wentLive {
		s.bus.Publish(ctx, events.DealershipWentLive{
			BaseEvent:      events.NewBaseEvent(),
			DealershipID:   dealership.ID,
			DealershipName: dealership.Name,
			AssignedUserID: dealership.AssignedUserID,
			MonthlyValue:   dealership.MonthlyValue,
		})
		s.log.Info("dealership went live",
			"dealership_id", dealership.ID,
			"name", dealership.Name,
		)
	}

	return toDealershipResponse(dealership), nil
}

// Delete removes the dealership and its dependent records. Rejected while
// open deals exist.
func (s *Service) Delete(ctx context.Context, caller httpkit.Identity, id uuid.UUID) error {
	if _, err := s.visibleDealership(ctx, caller, id); err != nil {
		return err
	}

	open, err := s.openDeals.CountOpenByDealership(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return ErrHasOpenDeals
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDealershipNotFound
		}
		return err
	}
	return nil
}

// Import processes an uploaded CSV of leads on behalf of the caller and
// publishes a completion event with the aggregate counts.
func (s *Service) Import(ctx context.Context, caller httpkit.Identity, file io.Reader) (importer.Summary, error) {
	store := &importStore{
		repo:        s.repo,
		importedBy:  caller.UserID(),
		territoryID: caller.TerritoryID(),
	}

	summary, err := importer.Import(ctx, file, store)
	if err != nil {
		return importer.Summary{}, err
	}

	s.log.ImportSummary(caller.UserID().String(), summary.Created, summary.Skipped, summary.Failed)
	s.bus.Publish(ctx, events.LeadImportCompleted{
		BaseEvent:    events.NewBaseEvent(),
		ImportedByID: caller.UserID(),
		Created:      summary.Created,
		Skipped:      summary.Skipped,
		Failed:       summary.Failed,
	})

	return summary, nil
}

func (s *Service) AddContact(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.AddContactRequest) (transport.ContactResponse, error) {
	if _, err := s.visibleDealership(ctx, caller, id); err != nil {
		return transport.ContactResponse{}, err
	}

	params := repository.CreateContactParams{
		DealershipID: id,
		FirstName:    req.FirstName,
		LastName:     optional(req.LastName),
		Email:        optional(req.Email),
		Position:     optional(req.Position),
		IsPrimary:    req.IsPrimary,
	}
	if req.Phone != "" {
		normalized := phone.NormalizeE164(req.Phone)
		params.Phone = &normalized
	}

	contact, err := s.repo.CreateContact(ctx, params)
	if err != nil {
		return transport.ContactResponse{}, err
	}

	return toContactResponse(contact), nil
}

func (s *Service) ListContacts(ctx context.Context, caller httpkit.Identity, id uuid.UUID) ([]transport.ContactResponse, error) {
	if _, err := s.visibleDealership(ctx, caller, id); err != nil {
		return nil, err
	}

	contacts, err := s.repo.ListContacts(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, toContactResponse(contact))
	}
	return out, nil
}

func (s *Service) ListActivities(ctx context.Context, caller httpkit.Identity, id uuid.UUID) ([]transport.ActivityResponse, error) {
	if _, err := s.visibleDealership(ctx, caller, id); err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivities(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, transport.ActivityResponse{
			ID:           activity.ID,
			DealershipID: activity.DealershipID,
			UserID:       activity.UserID,
			Type:         activity.Type,
			Description:  activity.Description,
			CreatedAt:    activity.CreatedAt,
		})
	}
	return out, nil
}

// RecordDealStageChange appends an activity entry for a deal moving stages.
// Called from the event subscription, not a request path.
func (s *Service) RecordDealStageChange(ctx context.Context, event events.DealStageChanged) error {
	userID := event.OwnerID
	_, err := s.repo.CreateActivity(ctx, repository.CreateActivityParams{
		DealershipID: event.DealershipID,
		UserID:       &userID,
		Type:         "DEAL_STAGE",
		Description:  "Deal \"" + event.Title + "\" moved from " + event.FromStage + " to " + event.ToStage,
	})
	return err
}

// importStore adapts the repository to the importer's Store port. Each
// created row inherits the importing caller's assignment and territory.
type importStore struct {
	repo        *repository.Repository
	importedBy  uuid.UUID
	territoryID *uuid.UUID
}

func (s *importStore) DealershipExists(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *importStore) CreateRow(ctx context.Context, row importer.Row) error {
	importedBy := s.importedBy
	params := repository.ImportRowParams{
		Dealership: repository.CreateDealershipParams{
			Name:           row.Name,
			Status:         string(domain.StatusProspect),
			AssignedUserID: &importedBy,
			TerritoryID:    s.territoryID,
			Address:        optional(row.Address),
			City:           optional(row.City),
			State:          optional(row.State),
			ZipCode:        optional(row.ZipCode),
			Website:        optional(row.Website),
			Source:         optional(defaultString(row.Source, "csv_import")),
		},
		ImportedBy: importedBy,
	}
	if row.Phone != "" {
		normalized := phone.NormalizeE164(row.Phone)
		params.Dealership.Phone = &normalized
	}

	if row.HasContact() {
		contact := repository.CreateContactParams{
			FirstName: defaultString(row.ContactFirstName, "Unknown"),
			LastName:  optional(row.ContactLastName),
			Email:     optional(row.ContactEmail),
			Position:  optional(row.ContactPosition),
		}
		if row.ContactPhone != "" {
			normalized := phone.NormalizeE164(row.ContactPhone)
			contact.Phone = &normalized
		}
		params.Contact = &contact
	}

	_, err := s.repo.CreateImportRow(ctx, params)
	return err
}

func scopeFor(caller httpkit.Identity) *repository.Scope {
	if caller.IsAdmin() {
		return nil
	}
	return &repository.Scope{
		UserID:      caller.UserID(),
		TerritoryID: caller.TerritoryID(),
	}
}

func (s *Service) visibleDealership(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (repository.Dealership, error) {
	dealership, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Dealership{}, ErrDealershipNotFound
		}
		return repository.Dealership{}, err
	}

	if caller.IsAdmin() {
		return dealership, nil
	}
	if dealership.AssignedUserID != nil && *dealership.AssignedUserID == caller.UserID() {
		return dealership, nil
	}
	if dealership.TerritoryID != nil && caller.TerritoryID() != nil && *dealership.TerritoryID == *caller.TerritoryID() {
		return dealership, nil
	}
	return repository.Dealership{}, ErrForbidden
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toDealershipResponse(d repository.Dealership) transport.DealershipResponse {
	return transport.DealershipResponse{
		ID:              d.ID,
		Name:            d.Name,
		Status:          domain.Status(d.Status),
		IsLive:          d.IsLive,
		LiveActivatedAt: d.LiveActivatedAt,
		MonthlyValue:    d.MonthlyValue,
		AssignedUserID:  d.AssignedUserID,
		TerritoryID:     d.TerritoryID,
		Address:         d.Address,
		City:            d.City,
		State:           d.State,
		ZipCode:         d.ZipCode,
		Phone:           d.Phone,
		Website:         d.Website,
		Source:          d.Source,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toContactResponse(c repository.Contact) transport.ContactResponse {
	return transport.ContactResponse{
		ID:           c.ID,
		DealershipID: c.DealershipID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		Position:     c.Position,
		IsPrimary:    c.IsPrimary,
		CreatedAt:    c.CreatedAt,
	}
}
