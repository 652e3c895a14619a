package payments_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/cache"
	"github.com/saasrevops/revenue-gateway/internal/payments"
)

func TestPayments(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payments Suite")
}

// Mock platform payments API client for testing
type mockPaymentsClient struct {
	payments []payments.Payment

	listCalls     int
	allocateCalls int

	allocateError error
	refundError   error
}

func (m *mockPaymentsClient) ListPayments(ctx context.Context, status string) ([]payments.Payment, error) {
	m.listCalls++
	if status == "" {
		return m.payments, nil
	}
	var filtered []payments.Payment
	for _, p := range m.payments {
		if p.Status == status {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m *mockPaymentsClient) GetPayment(ctx context.Context, paymentID string) (*payments.Payment, error) {
	for i := range m.payments {
		if m.payments[i].ID == paymentID {
			return &m.payments[i], nil
		}
	}
	return nil, errors.New("payment not found")
}

func (m *mockPaymentsClient) AllocatePayment(ctx context.Context, paymentID string, dto payments.AllocatePaymentDTO) ([]payments.Allocation, error) {
	m.allocateCalls++
	if m.allocateError != nil {
		return nil, m.allocateError
	}
	allocations := make([]payments.Allocation, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		allocations = append(allocations, payments.Allocation{
			ID:          "al-" + line.InvoiceID,
			PaymentID:   paymentID,
			InvoiceID:   line.InvoiceID,
			AmountCents: line.AmountCents,
		})
	}
	return allocations, nil
}

func (m *mockPaymentsClient) CreateRefund(ctx context.Context, paymentID string, dto payments.CreateRefundDTO) (*payments.Refund, error) {
	if m.refundError != nil {
		return nil, m.refundError
	}
	return &payments.Refund{
		ID:          "rf-1",
		PaymentID:   paymentID,
		AmountCents: dto.AmountCents,
		Reason:      dto.Reason,
	}, nil
}

var _ = Describe("Payments Service", func() {
	var (
		service    *payments.Service
		mockClient *mockPaymentsClient
		ctx        context.Context
	)

	BeforeEach(func() {
		mockClient = &mockPaymentsClient{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := cache.NewStore(128, time.Minute)
		bus := cache.NewBus(logger)
		service = payments.NewService(mockClient, store, bus, logger)
		ctx = context.Background()

		mockClient.payments = []payments.Payment{
			{ID: "pay-1", CustomerID: "cust-1", AmountCents: 100000, UnallocatedCents: 100000, Status: payments.PaymentStatusSettled},
			{ID: "pay-2", CustomerID: "cust-2", AmountCents: 50000, UnallocatedCents: 0, Status: payments.PaymentStatusAllocated},
		}
	})

	Describe("ListPayments", func() {
		It("should cache repeated reads of the same filter", func() {
			first, err := service.ListPayments(ctx, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(first).To(HaveLen(2))

			_, err = service.ListPayments(ctx, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(mockClient.listCalls).To(Equal(1))
		})

		It("should pass the status filter upstream", func() {
			settled, err := service.ListPayments(ctx, payments.PaymentStatusSettled)

			Expect(err).ToNot(HaveOccurred())
			Expect(settled).To(HaveLen(1))
			Expect(settled[0].ID).To(Equal("pay-1"))
		})
	})

	Describe("AllocatePayment", func() {
		It("should reject an empty allocation before calling upstream", func() {
			_, err := service.AllocatePayment(ctx, "pay-1", payments.AllocatePaymentDTO{})

			Expect(err).To(HaveOccurred())
			Expect(mockClient.allocateCalls).To(Equal(0))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("should reject a non-positive line amount", func() {
			_, err := service.AllocatePayment(ctx, "pay-1", payments.AllocatePaymentDTO{
				Lines: []payments.AllocationLineDTO{{InvoiceID: "inv-1", AmountCents: 0}},
			})

			Expect(err).To(HaveOccurred())
			Expect(mockClient.allocateCalls).To(Equal(0))
		})

		It("should return the allocations and stale the payment caches", func() {
			_, err := service.ListPayments(ctx, "")
			Expect(err).ToNot(HaveOccurred())

			allocations, err := service.AllocatePayment(ctx, "pay-1", payments.AllocatePaymentDTO{
				Lines: []payments.AllocationLineDTO{
					{InvoiceID: "inv-1", AmountCents: 60000},
					{InvoiceID: "inv-2", AmountCents: 40000},
				},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(allocations).To(HaveLen(2))
			Expect(allocations[0].PaymentID).To(Equal("pay-1"))

			_, err = service.ListPayments(ctx, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(mockClient.listCalls).To(Equal(2))
		})

		It("should surface an over-allocation refusal from the platform", func() {
			mockClient.allocateError = errors.New("allocation exceeds unallocated amount")

			_, err := service.AllocatePayment(ctx, "pay-2", payments.AllocatePaymentDTO{
				Lines: []payments.AllocationLineDTO{{InvoiceID: "inv-9", AmountCents: 1}},
			})

			Expect(err).To(MatchError(mockClient.allocateError))
		})
	})

	Describe("CreateRefund", func() {
		It("should require a reason", func() {
			_, err := service.CreateRefund(ctx, "pay-1", payments.CreateRefundDTO{AmountCents: 1000})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("should create the refund and stale the payment caches", func() {
			_, err := service.GetPayment(ctx, "pay-1")
			Expect(err).ToNot(HaveOccurred())

			refund, err := service.CreateRefund(ctx, "pay-1", payments.CreateRefundDTO{
				AmountCents: 25000,
				Reason:      "double charge",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(refund.PaymentID).To(Equal("pay-1"))
			Expect(refund.AmountCents).To(Equal(int64(25000)))
		})
	})
})
