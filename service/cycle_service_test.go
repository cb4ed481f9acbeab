package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dropship-invoicer/models"
	"dropship-invoicer/progress"
)

// The fakes share one event log so tests can assert stage ordering.

type fakeOrders struct {
	rows   []models.LineRecord
	getErr error
	events *[]string
	marked []string
}

func (f *fakeOrders) GetUnprocessed(context.Context) ([]models.LineRecord, error) {
	return f.rows, f.getErr
}

func (f *fakeOrders) MarkInvoiced(_ context.Context, reference string, _ time.Time) error {
	*f.events = append(*f.events, "mark:"+reference)
	f.marked = append(f.marked, reference)
	return nil
}

type fakeReconciler struct {
	index models.RemoteOrderIndex
	err   error
}

func (f *fakeReconciler) Resolve(context.Context, []string) (models.RemoteOrderIndex, error) {
	return f.index, f.err
}

type fakeRenderer struct {
	events  *[]string
	failRef string
}

func (f *fakeRenderer) GeneratePDF(_ context.Context, inv models.Invoice, destination string) error {
	if inv.Reference == f.failRef {
		return errors.New("disk full")
	}
	*f.events = append(*f.events, "render:"+filepath.Base(destination))
	return nil
}

func (f *fakeRenderer) DeleteArtifact(destination string) {
	*f.events = append(*f.events, "delete:"+filepath.Base(destination))
}

type fakeMailer struct {
	events  *[]string
	sendErr error
	sent    []string
}

func (f *fakeMailer) SendInvoiceBundle(_, _ string, paths []string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	*f.events = append(*f.events, "mail")
	f.sent = append(f.sent, paths...)
	return nil
}

func (f *fakeMailer) SendFailureReport(_, _ string) error {
	*f.events = append(*f.events, "failure-report")
	return nil
}

func cycleFixture(t *testing.T, events *[]string, orders *fakeOrders, rec *fakeReconciler, ren *fakeRenderer, mail *fakeMailer) *CycleService {
	t.Helper()
	s := NewCycleService(orders, rec, ren, mail, nil, progress.Noop{}, t.TempDir())
	s.now = func() time.Time { return time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC) }
	return s
}

func testRows() []models.LineRecord {
	prodDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	return []models.LineRecord{
		{Reference: "PO-100", PONumber: "5001", Part: "X1", Qty: 3, ProdDate: prodDate},
	}
}

func testIndex() models.RemoteOrderIndex {
	return models.RemoteOrderIndex{
		"PO-100": {
			"X1": {ProductID: "X1", Description: "Widget", UnitPrice: decimal.RequireFromString("10.00"), LineTotal: decimal.RequireFromString("30.00")},
		},
	}
}

func TestRunRendersMarksMailsAndCleansUp(t *testing.T) {
	var events []string
	orders := &fakeOrders{rows: testRows(), events: &events}
	renderer := &fakeRenderer{events: &events}
	mailer := &fakeMailer{events: &events}
	s := cycleFixture(t, &events, orders, &fakeReconciler{index: testIndex()}, renderer, mailer)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []string{
		"render:PO100_05_17_2024.pdf",
		"mark:PO-100",
		"mail",
		"delete:PO100_05_17_2024.pdf",
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}

	// The mark must use the raw store reference, not the sanitized one.
	if len(orders.marked) != 1 || orders.marked[0] != "PO-100" {
		t.Fatalf("marked = %v, want [PO-100]", orders.marked)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mailed artifact, got %v", mailer.sent)
	}
}

func TestRunNoOrdersIsSuccess(t *testing.T) {
	var events []string
	orders := &fakeOrders{events: &events}
	s := cycleFixture(t, &events, orders, &fakeReconciler{err: errors.New("must not be called")},
		&fakeRenderer{events: &events}, &fakeMailer{events: &events})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no downstream work for an empty batch, got %v", events)
	}
}

func TestRunReconcileFailureAbortsBeforeAnyMark(t *testing.T) {
	var events []string
	orders := &fakeOrders{rows: testRows(), events: &events}
	s := cycleFixture(t, &events, orders, &fakeReconciler{err: errors.New("status 500")},
		&fakeRenderer{events: &events}, &fakeMailer{events: &events})

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected reconciliation failure to abort the cycle")
	}
	if len(events) != 0 {
		t.Fatalf("expected no render/mark/mail after reconciliation failure, got %v", events)
	}
	if len(orders.marked) != 0 {
		t.Fatalf("expected no marks, got %v", orders.marked)
	}
}

func TestRunRenderFailureAbortsWithoutMarking(t *testing.T) {
	var events []string
	orders := &fakeOrders{rows: testRows(), events: &events}
	renderer := &fakeRenderer{events: &events, failRef: "PO100"}
	s := cycleFixture(t, &events, orders, &fakeReconciler{index: testIndex()}, renderer,
		&fakeMailer{events: &events})

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected render failure to abort the cycle")
	}
	if len(orders.marked) != 0 {
		t.Fatalf("render failed but reference was marked: %v", orders.marked)
	}
}

func TestRunMailFailureDoesNotFailCycle(t *testing.T) {
	var events []string
	orders := &fakeOrders{rows: testRows(), events: &events}
	renderer := &fakeRenderer{events: &events}
	mailer := &fakeMailer{events: &events, sendErr: errors.New("smtp down")}
	s := cycleFixture(t, &events, orders, &fakeReconciler{index: testIndex()}, renderer, mailer)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("mail failure must not fail the cycle, got: %v", err)
	}
	// Marks stand and cleanup still runs.
	if len(orders.marked) != 1 {
		t.Fatalf("marked = %v, want 1 mark", orders.marked)
	}
	last := events[len(events)-1]
	if last != "delete:PO100_05_17_2024.pdf" {
		t.Fatalf("expected cleanup after mail failure, events = %v", events)
	}
}
