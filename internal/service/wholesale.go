package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

// AdminAPI defines the Admin API operations required by the
// WholesaleService.
type AdminAPI interface {
	// CreateDraftOrder creates a draft order and returns its numeric id.
	CreateDraftOrder(ctx context.Context, order shopify.DraftOrder) (int64, error)
	// CreateMetaobject creates a metaobject of the given type.
	CreateMetaobject(ctx context.Context, objType string, fields []shopify.MetaobjectField) error
}

// WholesaleService captures B2B leads on the platform: each inquiry becomes
// a tagged draft order plus a wholesale_application metaobject tracking its
// review status. Both records must be created for the inquiry to count.
type WholesaleService struct {
	admin AdminAPI
	log   *zap.Logger
}

// NewWholesaleService constructs a WholesaleService over the given admin
// transport.
func NewWholesaleService(admin AdminAPI, log *zap.Logger) *WholesaleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &WholesaleService{admin: admin, log: log}
}

// CreateInquiry forwards a wholesale lead to the platform and returns a
// local reference id for the submitter.
func (s *WholesaleService) CreateInquiry(ctx context.Context, form models.WholesaleInquiry) (string, error) {
	firstName, lastName := splitName(form.ContactName)

	draftID, err := s.admin.CreateDraftOrder(ctx, shopify.DraftOrder{
		Note: "Wholesale Inquiry",
		Tags: []string{"wholesale-inquiry"},
		Customer: shopify.DraftOrderCustomer{
			FirstName: firstName,
			LastName:  lastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Tags:      []string{"wholesale"},
			Metafields: []shopify.Metafield{
				wholesaleMetafield("business_name", form.BusinessName),
				wholesaleMetafield("business_type", form.BusinessType),
				wholesaleMetafield("monthly_volume", form.MonthlyVolume),
			},
		},
		NoteAttributes: []shopify.NoteAttribute{
			{Name: "Business Name", Value: form.BusinessName},
			{Name: "Business Type", Value: form.BusinessType},
			{Name: "Monthly Volume", Value: form.MonthlyVolume},
			{Name: "Message", Value: form.Message},
		},
	})
	if err != nil {
		s.log.Error("failed to create wholesale draft order", zap.Error(err))
		return "", fmt.Errorf("create wholesale inquiry: %w", err)
	}

	err = s.admin.CreateMetaobject(ctx, "wholesale_application", []shopify.MetaobjectField{
		{Key: "business_name", Value: form.BusinessName},
		{Key: "contact_name", Value: form.ContactName},
		{Key: "email", Value: form.Email},
		{Key: "phone", Value: form.Phone},
		{Key: "business_type", Value: form.BusinessType},
		{Key: "monthly_volume", Value: form.MonthlyVolume},
		{Key: "message", Value: form.Message},
		{Key: "status", Value: "pending"},
		{Key: "draft_order_id", Value: strconv.FormatInt(draftID, 10)},
	})
	if err != nil {
		s.log.Error("failed to create wholesale application record",
			zap.Int64("draftOrderId", draftID), zap.Error(err))
		return "", fmt.Errorf("create wholesale inquiry: %w", err)
	}

	reference := uuid.NewString()
	s.log.Info("wholesale inquiry captured",
		zap.String("reference", reference),
		zap.Int64("draftOrderId", draftID),
	)
	return reference, nil
}

// splitName splits a free-form contact name into first and last parts, the
// remainder after the first word becoming the last name.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func wholesaleMetafield(key, value string) shopify.Metafield {
	return shopify.Metafield{
		Namespace: "wholesale",
		Key:       key,
		Value:     value,
		Type:      "single_line_text_field",
	}
}
