package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/line"
	"github.com/gemline/repair-service/internal/payment"
	"github.com/gemline/repair-service/internal/repository"
)

type fakeRepairRepo struct {
	repairs map[string]*domain.RepairTicket
	seq     int
	updates int
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{repairs: make(map[string]*domain.RepairTicket)}
}

func (f *fakeRepairRepo) Create(_ context.Context, repair *domain.RepairTicket) error {
	f.seq++
	if repair.ID == "" {
		repair.ID = fmt.Sprintf("repair-%04d", f.seq)
	}
	clone := *repair
	f.repairs[repair.ID] = &clone
	return nil
}

func (f *fakeRepairRepo) Update(_ context.Context, repair *domain.RepairTicket) error {
	if _, ok := f.repairs[repair.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.updates++
	clone := *repair
	f.repairs[repair.ID] = &clone
	return nil
}

func (f *fakeRepairRepo) GetByID(_ context.Context, id string) (*domain.RepairTicket, error) {
	repair, ok := f.repairs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *repair
	return &clone, nil
}

func (f *fakeRepairRepo) ListWithFilter(_ context.Context, filter repository.RepairFilter) ([]domain.RepairTicket, error) {
	var out []domain.RepairTicket
	for _, repair := range f.repairs {
		if filter.CustomerID != nil {
			if repair.CustomerID == nil || *repair.CustomerID != *filter.CustomerID {
				continue
			}
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if repair.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *repair)
	}
	return out, nil
}

func (f *fakeRepairRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.repairs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.repairs, id)
	return nil
}

func (f *fakeRepairRepo) SummarizeByStatus(_ context.Context) ([]repository.StatusCount, error) {
	byStatus := make(map[domain.RepairStatus]*repository.StatusCount)
	for _, repair := range f.repairs {
		entry, ok := byStatus[repair.Status]
		if !ok {
			entry = &repository.StatusCount{Status: repair.Status}
			byStatus[repair.Status] = entry
		}
		entry.Count++
		entry.NetTotal += repair.NetTotal()
	}
	out := make([]repository.StatusCount, 0, len(byStatus))
	for _, entry := range byStatus {
		out = append(out, *entry)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo(customers ...*domain.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[string]*domain.Customer)}
	for _, customer := range customers {
		clone := *customer
		repo.customers[customer.ID] = &clone
	}
	return repo
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("customer-%04d", len(f.customers)+1)
	}
	clone := *customer
	f.customers[customer.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := f.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *customer
	f.customers[customer.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *customer
	return &clone, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, customer := range f.customers {
		if customer.Email == email {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCustomerRepo) GetByLineUserID(_ context.Context, lineUserID string) (*domain.Customer, error) {
	for _, customer := range f.customers {
		if customer.LineUserID != nil && *customer.LineUserID == lineUserID {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeHistoryRepo struct {
	entries []domain.RepairHistory
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *domain.RepairHistory) error {
	if history.ID == "" {
		history.ID = fmt.Sprintf("history-%04d", len(f.entries)+1)
	}
	f.entries = append(f.entries, *history)
	return nil
}

func (f *fakeHistoryRepo) ListByRepair(_ context.Context, repairID string) ([]domain.RepairHistory, error) {
	var out []domain.RepairHistory
	for _, entry := range f.entries {
		if entry.RepairID == repairID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeAddressRepo struct {
	addresses map[string]*domain.Address
	seq       int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[string]*domain.Address)}
}

func (f *fakeAddressRepo) Create(_ context.Context, address *domain.Address) error {
	f.seq++
	if address.ID == "" {
		address.ID = fmt.Sprintf("address-%04d", f.seq)
	}
	clone := *address
	f.addresses[address.ID] = &clone
	return nil
}

func (f *fakeAddressRepo) Update(_ context.Context, address *domain.Address) error {
	if _, ok := f.addresses[address.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *address
	f.addresses[address.ID] = &clone
	return nil
}

func (f *fakeAddressRepo) GetDefaultByCustomer(_ context.Context, customerID string) (*domain.Address, error) {
	for _, address := range f.addresses {
		if address.CustomerID == customerID && address.IsDefault {
			clone := *address
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAddressRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Address, error) {
	var out []domain.Address
	for _, address := range f.addresses {
		if address.CustomerID == customerID {
			out = append(out, *address)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) ClearDefault(_ context.Context, customerID string) error {
	for _, address := range f.addresses {
		if address.CustomerID == customerID {
			address.IsDefault = false
		}
	}
	return nil
}

type fakePusher struct {
	pushed     [][]line.Message
	recipients []string
	err        error
}

func (f *fakePusher) Push(_ context.Context, to string, messages []line.Message) error {
	if f.err != nil {
		return f.err
	}
	f.recipients = append(f.recipients, to)
	f.pushed = append(f.pushed, messages)
	return nil
}

func (f *fakePusher) Configured() bool { return true }

type fakeLinkCreator struct {
	requests []payment.LinkRequest
	resp     *payment.LinkResponse
	err      error
}

func (f *fakeLinkCreator) CreatePaymentLink(_ context.Context, req payment.LinkRequest) (*payment.LinkResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &payment.LinkResponse{PaymentLinkID: "plink-1", URL: "https://pay.example.com/plink-1"}, nil
}

type fakeShipper struct {
	tracking string
	err      error
	calls    int
}

func (f *fakeShipper) CreateShipment(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.tracking == "" {
		return "TH000000001XX", nil
	}
	return f.tracking, nil
}
