package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPackagesDefaults(t *testing.T) {
	params, err := MapPackages(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"search":      {""},
		"orderby":     {"packagename"},
		"selection":   {"all"},
		"contenttype": {"all"},
		"offset":      {"1"},
		"count":       {"25"},
	}, params.Values)
	assert.Empty(t, params.Include)
}

func TestDefaultOrdering(t *testing.T) {
	tests := []struct {
		name   string
		mapper func(url.Values) (Params, error)
		in     url.Values
		want   string
	}{
		{"packages no query", MapPackages, url.Values{}, "packagename"},
		{"packages with query", MapPackages, url.Values{"q": {"x"}}, "relevance"},
		{"packages query and sort name", MapPackages, url.Values{"q": {"x"}, "sort": {"name"}}, "packagename"},
		{"packages sort relevance without query", MapPackages, url.Values{"sort": {"relevance"}}, "relevance"},
		{"providers no query", MapProviders, url.Values{}, "vendorname"},
		{"providers with query", MapProviders, url.Values{"q": {"ebsco"}}, "relevance"},
		{"titles no filter", MapTitles, url.Values{}, "titlename"},
		{"titles name filter", MapTitles, url.Values{"filter[name]": {"nature"}}, "relevance"},
		{"titles empty name filter", MapTitles, url.Values{"filter[name]": {""}}, "titlename"},
		{"resources sort name", MapResources, url.Values{"filter[name]": {"x"}, "sort": {"name"}}, "titlename"},
		{"titles with query", MapTitles, url.Values{"q": {"x"}}, "relevance"},
		{"resources with query", MapResources, url.Values{"q": {"x"}}, "relevance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := tt.mapper(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Values.Get(ParamOrderBy))
		})
	}
}

func TestSearchAlwaysPresent(t *testing.T) {
	params, err := MapProviders(url.Values{"q": {""}})
	require.NoError(t, err)
	search, ok := params.Values[ParamSearch]
	require.True(t, ok)
	assert.Equal(t, []string{""}, search)
}

func TestSelectionFilter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"true", "selected"},
		{"false", "notselected"},
		{"ebsco", "orderedthroughebsco"},
		{"all", "all"},
		{"TRUE", "selected"},
	}
	for _, tt := range tests {
		params, err := MapPackages(url.Values{"filter[selected]": {tt.in}})
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, params.Values.Get(ParamSelection))
	}

	_, err := MapTitles(url.Values{"filter[selected]": {"all"}})
	assertRequestError(t, err, domain.ErrInvalidQuery, "filter[selected]")

	_, err = MapPackages(url.Values{"filter[selected]": {"maybe"}})
	assertRequestError(t, err, domain.ErrInvalidQuery, "filter[selected]")
}

func TestTypeFilter(t *testing.T) {
	params, err := MapPackages(url.Values{"filter[type]": {"ebook"}})
	require.NoError(t, err)
	assert.Equal(t, "ebook", params.Values.Get(ParamContentType))
	assert.Empty(t, params.Values.Get(ParamResourceType))

	params, err = MapTitles(url.Values{"filter[type]": {"streamingvideo"}})
	require.NoError(t, err)
	assert.Equal(t, "streamingvideo", params.Values.Get(ParamResourceType))

	_, err = MapPackages(url.Values{"filter[type]": {"book"}})
	assertRequestError(t, err, domain.ErrInvalidQuery, "filter[type]")

	_, err = MapTitles(url.Values{"filter[type]": {"ebook"}})
	assertRequestError(t, err, domain.ErrInvalidQuery, "filter[type]")

	params, err = MapProviders(url.Values{"filter[type]": {"anything"}})
	require.NoError(t, err, "providers ignore the type filter")
	assert.Empty(t, params.Values.Get(ParamContentType))
}

func TestInvalidSort(t *testing.T) {
	_, err := MapPackages(url.Values{"sort": {"price"}})
	assertRequestError(t, err, domain.ErrInvalidQuery, "sort")

	var reqErr *domain.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Invalid Query Parameter for sort", reqErr.Message)
}

func TestTitleSearchFields(t *testing.T) {
	tests := []struct {
		filter string
		field  string
	}{
		{"filter[name]", "titlename"},
		{"filter[isxn]", "isxn"},
		{"filter[subject]", "subject"},
		{"filter[publisher]", "publisher"},
	}
	for _, tt := range tests {
		params, err := MapTitles(url.Values{tt.filter: {"term"}})
		require.NoError(t, err)
		assert.Equal(t, tt.field, params.Values.Get(ParamSearchField))
		assert.Equal(t, "term", params.Values.Get(ParamSearch))
	}
}

func TestConflictingTitleFilters(t *testing.T) {
	_, err := MapTitles(url.Values{"filter[name]": {"a"}, "filter[publisher]": {"b"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflictingFilters))
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestPagingIsForwardedUnvalidated(t *testing.T) {
	params, err := MapPackages(url.Values{"page": {"3"}, "count": {"500"}})
	require.NoError(t, err)
	assert.Equal(t, "3", params.Values.Get(ParamOffset))
	assert.Equal(t, "500", params.Values.Get(ParamCount), "range is enforced upstream")

	_, err = MapPackages(url.Values{"count": {"ten"}})
	assertRequestError(t, err, domain.ErrInvalidQuery, "count")
}

func TestIncludeIsStripped(t *testing.T) {
	params, err := MapProviders(url.Values{"include": {"packages, provider"}})
	require.NoError(t, err)
	_, forwarded := params.Values["include"]
	assert.False(t, forwarded)
	assert.Equal(t, []string{"packages", "provider"}, params.Include)
	assert.True(t, params.Includes("packages"))
	assert.False(t, params.Includes("resources"))
}

func assertRequestError(t *testing.T, err error, kind error, parameter string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind))

	var reqErr *domain.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, parameter, reqErr.Parameter)
}

func TestTitleQueryWithoutFilter(t *testing.T) {
	for name, mapper := range map[string]func(url.Values) (Params, error){
		"titles":    MapTitles,
		"resources": MapResources,
	} {
		t.Run(name, func(t *testing.T) {
			params, err := mapper(url.Values{"q": {"nature"}})
			require.NoError(t, err)
			assert.Equal(t, "nature", params.Values.Get(ParamSearch))
			assert.Equal(t, "titlename", params.Values.Get(ParamSearchField))
			assert.Equal(t, OrderRelevance, params.Values.Get(ParamOrderBy))
		})
	}

	params, err := MapTitles(url.Values{"q": {"ignored"}, "filter[isxn]": {"1234"}})
	require.NoError(t, err)
	assert.Equal(t, "1234", params.Values.Get(ParamSearch))
	assert.Equal(t, "isxn", params.Values.Get(ParamSearchField))
}
