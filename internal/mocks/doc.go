// Package mocks provides centralized mock implementations for testing.
//
// Each mock has one function field per interface method. A method whose
// field is nil fails with DefaultError, or with an "unexpected call" error
// when DefaultError is nil, so tests only wire the calls they expect.
//
//	api := &mocks.MockRMAPI{
//	    GetVendorFn: func(ctx context.Context, creds domain.TenantConfig, id int64) (*rmapi.Vendor, error) {
//	        return &rmapi.Vendor{VendorID: id}, nil
//	    },
//	}
//
// Calls are recorded by method name and can be inspected with CallCount.
package mocks
