package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/mocks"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/translate"
	"github.com/phrazzld/kb-gateway/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resourceTitle(custom, packageCustom bool) rmapi.Title {
	return rmapi.Title{
		TitleID:       356,
		TitleName:     "Journal of Things",
		IsTitleCustom: custom,
		PubType:       "journal",
		CustomerResourcesList: []rmapi.CustomerResource{{
			TitleID:         356,
			VendorID:        22,
			PackageID:       1887786,
			IsPackageCustom: packageCustom,
			IsSelected:      true,
			VisibilityData:  rmapi.VisibilityData{Reason: "Hidden by EP"},
		}},
	}
}

// resourceStore serves one resource and applies writes to it.
func resourceStore(title rmapi.Title) *mocks.MockRMAPI {
	stored := title
	return &mocks.MockRMAPI{
		GetResourceFn: func(context.Context, domain.TenantConfig, int64, int64, int64) (*rmapi.Title, error) {
			out := stored
			out.CustomerResourcesList = append([]rmapi.CustomerResource(nil), stored.CustomerResourcesList...)
			return &out, nil
		},
		UpdateResourceFn: func(_ context.Context, _ domain.TenantConfig, _, _, _ int64, body rmapi.ResourcePut) error {
			cr := &stored.CustomerResourcesList[0]
			cr.IsSelected = body.IsSelected
			cr.VisibilityData.IsHidden = body.IsHidden
			cr.CustomCoverageList = body.CustomCoverageList
			cr.CustomEmbargoPeriod = body.CustomEmbargoPeriod
			cr.CoverageStatement = body.CoverageStatement
			if body.TitleName != "" {
				stored.TitleName = body.TitleName
			}
			return nil
		},
	}
}

func TestResourceService_Update(t *testing.T) {
	t.Run("refetched state is returned", func(t *testing.T) {
		api := resourceStore(resourceTitle(false, false))
		svc := NewResourceService(api, testLogger())

		doc, err := svc.Update(ctx, testCreds, "22-1887786-356", validation.ResourcePatch{
			IsSelected: boolPtr(true),
			CustomCoverages: validation.Some([]validation.Coverage{
				{BeginCoverage: strPtr("2001-01-01"), EndCoverage: strPtr("2002-01-01")},
				{BeginCoverage: strPtr("2005-01-01")},
			}),
			CoverageStatement: strPtr("Available from 2001"),
		})
		require.NoError(t, err)

		attrs := single(t, doc).Attributes.(translate.ResourceAttributes)
		require.Len(t, attrs.CustomCoverages, 2)
		assert.Equal(t, "2005-01-01", attrs.CustomCoverages[0].BeginCoverage)
		assert.Equal(t, "Available from 2001", attrs.CoverageStatement)
		assert.Empty(t, attrs.VisibilityData.Reason, "single-item view blanks the system reason")
		assert.Equal(t, []string{"GetResource", "UpdateResource", "GetResource"}, api.Calls())
	})

	t.Run("managed title fields are rejected in order", func(t *testing.T) {
		api := resourceStore(resourceTitle(false, false))
		svc := NewResourceService(api, testLogger())

		_, err := svc.Update(ctx, testCreds, "22-1887786-356", validation.ResourcePatch{
			Name:           strPtr("Renamed"),
			PublisherName:  strPtr("Someone"),
			IsPeerReviewed: boolPtr(true),
			IsSelected:     boolPtr(true),
		})

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"titleName", "isPeerReviewed", "publisherName"}, verrs.Fields())
		assert.Zero(t, api.CallCount("UpdateResource"))
	})

	t.Run("custom title can be renamed", func(t *testing.T) {
		api := resourceStore(resourceTitle(true, true))
		svc := NewResourceService(api, testLogger())

		doc, err := svc.Update(ctx, testCreds, "22-1887786-356", validation.ResourcePatch{
			Name:       strPtr("Renamed"),
			IsSelected: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", single(t, doc).Attributes.(translate.ResourceAttributes).Name)
	})

	t.Run("missing membership is not found", func(t *testing.T) {
		title := resourceTitle(false, false)
		title.CustomerResourcesList = nil
		svc := NewResourceService(resourceStore(title), testLogger())

		_, err := svc.Update(ctx, testCreds, "22-1887786-356", validation.ResourcePatch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestResourceService_Delete(t *testing.T) {
	tests := []struct {
		name           string
		title          rmapi.Title
		expectDelete   bool
		expectDeselect bool
	}{
		{name: "custom title is deleted", title: resourceTitle(true, true), expectDelete: true},
		{name: "managed title in custom package is deleted", title: resourceTitle(false, true), expectDelete: true},
		{name: "managed resource is deselected", title: resourceTitle(false, false), expectDeselect: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := resourceStore(tc.title)
			var put *rmapi.ResourcePut
			api.UpdateResourceFn = func(_ context.Context, _ domain.TenantConfig, _, _, _ int64, body rmapi.ResourcePut) error {
				put = &body
				return nil
			}
			api.DeleteResourceFn = func(context.Context, domain.TenantConfig, int64, int64, int64) error {
				return nil
			}
			svc := NewResourceService(api, testLogger())

			require.NoError(t, svc.Delete(ctx, testCreds, "22-1887786-356"))
			assert.Equal(t, tc.expectDelete, api.CallCount("DeleteResource") == 1)
			if tc.expectDeselect {
				require.NotNil(t, put)
				assert.False(t, put.IsSelected)
				assert.NotNil(t, put.CustomCoverageList)
			} else {
				assert.Nil(t, put)
			}
		})
	}
}

func TestResourceService_Create(t *testing.T) {
	newAPI := func(packageCustom bool) *mocks.MockRMAPI {
		api := resourceStore(resourceTitle(false, packageCustom))
		api.GetPackageFn = func(_ context.Context, _ domain.TenantConfig, vendorID, packageID int64) (*rmapi.Package, error) {
			return &rmapi.Package{VendorID: vendorID, PackageID: packageID, IsCustom: packageCustom}, nil
		}
		api.GetTitleFn = func(_ context.Context, _ domain.TenantConfig, titleID int64) (*rmapi.Title, error) {
			return &rmapi.Title{TitleID: titleID, TitleName: "Journal of Things"}, nil
		}
		return api
	}

	t.Run("title is added to custom package", func(t *testing.T) {
		api := newAPI(true)
		var put rmapi.ResourcePut
		var target []int64
		api.UpdateResourceFn = func(_ context.Context, _ domain.TenantConfig, v, p, ti int64, body rmapi.ResourcePut) error {
			put = body
			target = []int64{v, p, ti}
			return nil
		}
		svc := NewResourceService(api, testLogger())

		doc, err := svc.Create(ctx, testCreds, validation.ResourceCreate{
			PackageID: "22-1887786",
			TitleID:   "356",
			URL:       strPtr("https://example.com"),
		})
		require.NoError(t, err)

		assert.Equal(t, []int64{22, 1887786, 356}, target)
		assert.True(t, put.IsSelected)
		assert.Equal(t, "https://example.com", put.URL)
		assert.Equal(t, "22-1887786-356", single(t, doc).ID)
	})

	t.Run("managed package is rejected", func(t *testing.T) {
		api := newAPI(false)
		svc := NewResourceService(api, testLogger())

		_, err := svc.Create(ctx, testCreds, validation.ResourceCreate{PackageID: "22-1887786", TitleID: "356"})

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"packageId"}, verrs.Fields())
		assert.Zero(t, api.CallCount("UpdateResource"))
	})

	t.Run("invalid ids are reported together", func(t *testing.T) {
		api := &mocks.MockRMAPI{}
		svc := NewResourceService(api, testLogger())

		_, err := svc.Create(ctx, testCreds, validation.ResourceCreate{PackageID: "22", TitleID: "abc"})

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"packageId", "titleId"}, verrs.Fields())
		assert.Empty(t, api.Calls())
	})
}

func TestResourceService_Get(t *testing.T) {
	api := resourceStore(resourceTitle(false, false))
	api.GetPackageFn = func(context.Context, domain.TenantConfig, int64, int64) (*rmapi.Package, error) {
		return nil, &rmapi.UpstreamError{Status: http.StatusInternalServerError, Messages: []string{"boom"}}
	}
	svc := NewResourceService(api, testLogger())

	t.Run("title include needs no extra call", func(t *testing.T) {
		doc, err := svc.Get(ctx, testCreds, "22-1887786-356", []string{"title"})
		require.NoError(t, err)
		require.Len(t, doc.Included, 1)
		assert.Equal(t, "356", doc.Included[0].ID)
		assert.True(t, single(t, doc).Relationships["title"].Meta.Included)
	})

	t.Run("failed include fails the request", func(t *testing.T) {
		_, err := svc.Get(ctx, testCreds, "22-1887786-356", []string{"title", "package"})
		assert.True(t, rmapi.IsUpstreamStatus(err, http.StatusInternalServerError))
	})

	t.Run("package id is not a resource id", func(t *testing.T) {
		_, err := svc.Get(ctx, testCreds, "22-1887786", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}
