package translate

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func TestSortCoverages(t *testing.T) {
	tests := []struct {
		name string
		in   []rmapi.Coverage
		want []rmapi.Coverage
	}{
		{
			name: "already descending",
			in:   []rmapi.Coverage{{BeginCoverage: "2005-01-01"}, {BeginCoverage: "2000-01-01", EndCoverage: "2004-02-01"}},
			want: []rmapi.Coverage{{BeginCoverage: "2005-01-01"}, {BeginCoverage: "2000-01-01", EndCoverage: "2004-02-01"}},
		},
		{
			name: "reversed input is corrected",
			in:   []rmapi.Coverage{{BeginCoverage: "2000-01-01", EndCoverage: "2004-02-01"}, {BeginCoverage: "2005-01-01"}},
			want: []rmapi.Coverage{{BeginCoverage: "2005-01-01"}, {BeginCoverage: "2000-01-01", EndCoverage: "2004-02-01"}},
		},
		{
			name: "unparseable sorts last",
			in:   []rmapi.Coverage{{BeginCoverage: "junk"}, {BeginCoverage: "1999-01-01"}},
			want: []rmapi.Coverage{{BeginCoverage: "1999-01-01"}, {BeginCoverage: "junk"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortCoverages(tt.in))
		})
	}
}

func TestResourcePutSortsPatchCoverages(t *testing.T) {
	title := rmapi.Title{TitleID: 3}
	cr := rmapi.CustomerResource{VendorID: 1, PackageID: 2, IsSelected: true}

	put := ResourcePut(title, cr, validation.ResourcePatch{
		IsSelected: boolPtr(true),
		CustomCoverages: validation.Some([]validation.Coverage{
			{BeginCoverage: strPtr("2000-01-01"), EndCoverage: strPtr("2004-02-01")},
			{BeginCoverage: strPtr("2005-01-01")},
		}),
	})

	assert.Equal(t, []rmapi.Coverage{
		{BeginCoverage: "2005-01-01"},
		{BeginCoverage: "2000-01-01", EndCoverage: "2004-02-01"},
	}, put.CustomCoverageList)
}

func TestResourcePutForwardsAbsentEmbargoAsNull(t *testing.T) {
	title := rmapi.Title{TitleID: 3}
	cr := rmapi.CustomerResource{VendorID: 1, PackageID: 2, IsSelected: true}

	put := ResourcePut(title, cr, validation.ResourcePatch{IsSelected: boolPtr(true)})
	out, err := json.Marshal(put)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, "null", string(raw["customEmbargoPeriod"]))
	assert.Equal(t, "[]", string(raw["customCoverageList"]))
	assert.NotContains(t, raw, "titleName")
}

func TestResourcePutEmbargo(t *testing.T) {
	title := rmapi.Title{TitleID: 3}
	cr := rmapi.CustomerResource{
		IsSelected:          true,
		CustomEmbargoPeriod: &rmapi.EmbargoPeriod{EmbargoUnit: "Months", EmbargoValue: 6},
	}

	kept := ResourcePut(title, cr, validation.ResourcePatch{IsSelected: boolPtr(true)})
	assert.Equal(t, &rmapi.EmbargoPeriod{EmbargoUnit: "Months", EmbargoValue: 6}, kept.CustomEmbargoPeriod)

	cleared := ResourcePut(title, cr, validation.ResourcePatch{
		IsSelected:          boolPtr(true),
		CustomEmbargoPeriod: validation.Some(validation.EmbargoPatch{EmbargoUnit: strPtr(""), EmbargoValue: intPtr(0)}),
	})
	assert.Nil(t, cleared.CustomEmbargoPeriod)
}

func TestResourcePutExplicitNull(t *testing.T) {
	title := rmapi.Title{TitleID: 3}
	cr := rmapi.CustomerResource{
		IsSelected:          true,
		CustomCoverageList:  []rmapi.Coverage{{BeginCoverage: "2001-01-01"}},
		CustomEmbargoPeriod: &rmapi.EmbargoPeriod{EmbargoUnit: "Months", EmbargoValue: 6},
	}

	tests := []struct {
		name          string
		body          string
		wantEmbargo   *rmapi.EmbargoPeriod
		wantCoverages []rmapi.Coverage
	}{
		{
			name:          "null clears both",
			body:          `{"isSelected":true,"customEmbargoPeriod":null,"customCoverages":null}`,
			wantEmbargo:   nil,
			wantCoverages: []rmapi.Coverage{},
		},
		{
			name:          "null embargo only",
			body:          `{"isSelected":true,"customEmbargoPeriod":null}`,
			wantEmbargo:   nil,
			wantCoverages: []rmapi.Coverage{{BeginCoverage: "2001-01-01"}},
		},
		{
			name:          "absent keeps stored values",
			body:          `{"isSelected":true}`,
			wantEmbargo:   &rmapi.EmbargoPeriod{EmbargoUnit: "Months", EmbargoValue: 6},
			wantCoverages: []rmapi.Coverage{{BeginCoverage: "2001-01-01"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p validation.ResourcePatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			put := ResourcePut(title, cr, p)
			assert.Equal(t, tt.wantEmbargo, put.CustomEmbargoPeriod)
			assert.Equal(t, tt.wantCoverages, put.CustomCoverageList)
		})
	}
}

func TestPackagePutExplicitNullCoverage(t *testing.T) {
	current := rmapi.Package{
		IsSelected:     true,
		CustomCoverage: rmapi.Coverage{BeginCoverage: "2001-01-01", EndCoverage: "2002-01-01"},
	}

	var cleared validation.PackagePatch
	require.NoError(t, json.Unmarshal([]byte(`{"isSelected":true,"customCoverage":null}`), &cleared))
	assert.Nil(t, PackagePut(current, cleared).CustomCoverage)

	var kept validation.PackagePatch
	require.NoError(t, json.Unmarshal([]byte(`{"isSelected":true}`), &kept))
	assert.Equal(t, &rmapi.Coverage{BeginCoverage: "2001-01-01", EndCoverage: "2002-01-01"}, PackagePut(current, kept).CustomCoverage)
}

func TestWritesForceProxyInheritedFalse(t *testing.T) {
	inherited := &rmapi.Proxy{ID: "EZProxy", Inherited: true}

	pkgPut := PackagePut(rmapi.Package{IsSelected: true, Proxy: inherited}, validation.PackagePatch{IsSelected: boolPtr(true)})
	require.NotNil(t, pkgPut.Proxy)
	assert.Equal(t, rmapi.Proxy{ID: "EZProxy", Inherited: false}, *pkgPut.Proxy)

	resPut := ResourcePut(rmapi.Title{}, rmapi.CustomerResource{IsSelected: true, Proxy: inherited}, validation.ResourcePatch{
		IsSelected: boolPtr(true),
		Proxy:      &validation.ProxyPatch{ID: strPtr("<n>")},
	})
	require.NotNil(t, resPut.Proxy)
	assert.Equal(t, rmapi.Proxy{ID: "<n>", Inherited: false}, *resPut.Proxy)

	vendorPut := ProviderPut(rmapi.Vendor{Proxy: inherited}, validation.ProviderPatch{
		ProviderToken: &validation.TokenPatch{Value: strPtr("tok")},
	})
	require.NotNil(t, vendorPut.Proxy)
	assert.False(t, vendorPut.Proxy.Inherited)
	assert.Equal(t, "tok", vendorPut.VendorToken.Value)
}

func TestPackagePut(t *testing.T) {
	current := rmapi.Package{
		VendorID:       1,
		PackageID:      2,
		IsSelected:     false,
		VisibilityData: rmapi.VisibilityData{IsHidden: false},
	}

	put := PackagePut(current, validation.PackagePatch{
		IsSelected:     boolPtr(true),
		VisibilityData: &validation.VisibilityPatch{IsHidden: boolPtr(false)},
		CustomCoverage: validation.Some(validation.Coverage{
			BeginCoverage: strPtr("2000-01-01"),
			EndCoverage:   strPtr("2004-02-01"),
		}),
	})

	assert.True(t, put.IsSelected)
	assert.False(t, put.IsHidden)
	assert.Equal(t, &rmapi.Coverage{BeginCoverage: "2000-01-01", EndCoverage: "2004-02-01"}, put.CustomCoverage)
	assert.Empty(t, put.PackageName)
	assert.Zero(t, put.ContentType)
}

func TestPackagePutCustomPackage(t *testing.T) {
	current := rmapi.Package{
		IsCustom:    true,
		IsSelected:  true,
		PackageName: "Old",
		ContentType: "ebook",
	}

	put := PackagePut(current, validation.PackagePatch{IsSelected: boolPtr(true), Name: strPtr("New")})
	assert.Equal(t, "New", put.PackageName)
	assert.Equal(t, 3, put.ContentType)

	put = PackagePut(current, validation.PackagePatch{IsSelected: boolPtr(true), ContentType: strPtr("E-Journal")})
	assert.Equal(t, "Old", put.PackageName)
	assert.Equal(t, 4, put.ContentType)
}

func TestDeselectClearsCustomizations(t *testing.T) {
	allow := true
	pkg := rmapi.Package{
		IsSelected:            true,
		VisibilityData:        rmapi.VisibilityData{IsHidden: true},
		CustomCoverage:        rmapi.Coverage{BeginCoverage: "2001-01-01"},
		AllowEbscoToAddTitles: &allow,
	}
	pkgPut := DeselectPackagePut(pkg)
	assert.False(t, pkgPut.IsSelected)
	assert.False(t, pkgPut.IsHidden)
	assert.Nil(t, pkgPut.CustomCoverage)
	assert.Nil(t, pkgPut.AllowEbscoToAddTitles)

	cr := rmapi.CustomerResource{
		IsSelected:          true,
		VisibilityData:      rmapi.VisibilityData{IsHidden: true},
		CustomCoverageList:  []rmapi.Coverage{{BeginCoverage: "2001-01-01"}},
		CustomEmbargoPeriod: &rmapi.EmbargoPeriod{EmbargoUnit: "Days", EmbargoValue: 3},
		CoverageStatement:   "statement",
	}
	resPut := DeselectResourcePut(rmapi.Title{}, cr)
	assert.False(t, resPut.IsSelected)
	assert.False(t, resPut.IsHidden)
	assert.Empty(t, resPut.CustomCoverageList)
	assert.Nil(t, resPut.CustomEmbargoPeriod)
	assert.Empty(t, resPut.CoverageStatement)
}

func TestResourcePutCustomTitleFields(t *testing.T) {
	title := rmapi.Title{
		TitleID:        3,
		TitleName:      "Old name",
		PubType:        "book",
		IsTitleCustom:  true,
		IsPeerReviewed: false,
	}
	cr := rmapi.CustomerResource{IsSelected: true, URL: "https://old.example.com"}

	put := ResourcePut(title, cr, validation.ResourcePatch{
		IsSelected:      boolPtr(true),
		Name:            strPtr("New name"),
		PublicationType: strPtr("Journal"),
		IsPeerReviewed:  boolPtr(true),
		Identifiers: &[]validation.Identifier{
			{ID: json.RawMessage(`"1234-5678"`), Type: "ISSN", Subtype: "Online"},
		},
	})

	assert.Equal(t, "New name", put.TitleName)
	assert.Equal(t, "journal", put.PubType)
	require.NotNil(t, put.IsPeerReviewed)
	assert.True(t, *put.IsPeerReviewed)
	assert.Equal(t, "https://old.example.com", put.URL)
	assert.Equal(t, []rmapi.Identifier{{ID: "1234-5678", Type: 0, Subtype: 2}}, put.IdentifiersList)
}

func TestSelectResourcePut(t *testing.T) {
	put := SelectResourcePut(rmapi.Title{TitleID: 9}, strPtr("https://example.com"))
	assert.True(t, put.IsSelected)
	assert.Equal(t, "https://example.com", put.URL)
}

func TestCreatedResourceID(t *testing.T) {
	id := CreatedResourceID(rmapi.Package{VendorID: 123, PackageID: 456}, rmapi.Title{TitleID: 789})
	assert.Equal(t, "123-456-789", id.String())
}

func TestTitlePost(t *testing.T) {
	post := TitlePost(validation.TitleCreate{
		Name:            strPtr("Custom"),
		PublicationType: strPtr("Streaming Video"),
		Contributors:    []validation.Contributor{{Type: "Author", Contributor: "A"}},
	})
	assert.Equal(t, "Custom", post.TitleName)
	assert.Equal(t, "streamingvideo", post.PubType)
	assert.Equal(t, []rmapi.Contributor{{Type: "author", Contributor: "A"}}, post.ContributorsList)
	assert.Empty(t, post.IdentifiersList)
}

func TestCustomLabelPut(t *testing.T) {
	root := rmapi.Root{
		Proxy: rmapi.Proxy{ID: "EZProxy", Inherited: true},
		Labels: []rmapi.CustomLabel{
			{ID: 1, DisplayLabel: "One"},
			{ID: 3, DisplayLabel: "Three", DisplayOnFullTextFinder: true},
		},
	}

	deleted := CustomLabelPut(root, 3, nil)
	assert.Equal(t, []rmapi.CustomLabel{{ID: 1, DisplayLabel: "One"}, {ID: 3}}, deleted.Labels)
	assert.Equal(t, rmapi.Proxy{ID: "EZProxy"}, deleted.Proxy)

	added := CustomLabelPut(root, 2, &validation.CustomLabelPatch{
		DisplayLabel:               strPtr(" Two "),
		DisplayOnFullTextFinder:    boolPtr(true),
		DisplayOnPublicationFinder: boolPtr(false),
	})
	require.Len(t, added.Labels, 3)
	assert.Equal(t, rmapi.CustomLabel{ID: 2, DisplayLabel: "Two", DisplayOnFullTextFinder: true}, added.Labels[1])
}

func TestCustomLabelsPut(t *testing.T) {
	root := rmapi.Root{
		Proxy:  rmapi.Proxy{ID: "EZProxy", Inherited: true},
		Labels: []rmapi.CustomLabel{{ID: 1, DisplayLabel: "One"}, {ID: 2, DisplayLabel: "Two"}},
	}

	put := CustomLabelsPut(root, []validation.CustomLabelPatch{
		{ID: json.RawMessage(`4`), DisplayLabel: strPtr("Four"), DisplayOnFullTextFinder: boolPtr(true), DisplayOnPublicationFinder: boolPtr(false)},
		{ID: json.RawMessage(`"1"`), DisplayLabel: strPtr("Uno"), DisplayOnFullTextFinder: boolPtr(false), DisplayOnPublicationFinder: boolPtr(true)},
	})

	assert.Equal(t, []rmapi.CustomLabel{
		{ID: 1, DisplayLabel: "Uno", DisplayOnPublicationFinder: true},
		{ID: 4, DisplayLabel: "Four", DisplayOnFullTextFinder: true},
	}, put.Labels)
	assert.Equal(t, rmapi.Proxy{ID: "EZProxy"}, put.Proxy)
}

func TestRootProxyPut(t *testing.T) {
	put := RootProxyPut(rmapi.Root{Proxy: rmapi.Proxy{ID: "<n>"}}, "EZProxy")
	assert.Equal(t, rmapi.Proxy{ID: "EZProxy"}, put.Proxy)
	assert.NotNil(t, put.Labels)
}
