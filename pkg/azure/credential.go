// Package azure holds the concrete clients behind the console's three query
// backends and the directory listings used to resolve scopes.
package azure

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// ErrNothingFound is returned when a listing the operator must pick from
// comes back empty.
var ErrNothingFound = errors.New("nothing found")

// NewCredential returns the default credential chain (environment, managed
// identity, CLI login). Credential management beyond this is out of scope.
func NewCredential() (*azidentity.DefaultAzureCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}
	return cred, nil
}
