package sui

import (
	"context"
	"testing"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func testDeployer(t *testing.T) *Deployer {
	t.Helper()

	return NewDeployer(testClient(t))
}

func Test_ParseArtifact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		give       string
		wantDigest []byte
		wantErr    string
	}{
		{
			name:       "digest as byte array",
			give:       `{"modules":["AAECAw=="],"dependencies":["0x1","0x2"],"digest":[202,254,0,1]}`,
			wantDigest: []byte{0xCA, 0xFE, 0x00, 0x01},
		},
		{
			name:       "digest as base64",
			give:       `{"modules":["AAECAw=="],"dependencies":[],"digest":"yv4AAQ=="}`,
			wantDigest: []byte{0xCA, 0xFE, 0x00, 0x01},
		},
		{
			name:    "no modules",
			give:    `{"modules":[],"dependencies":["0x1"]}`,
			wantErr: "no compiled modules",
		},
		{
			name:    "digest byte out of range",
			give:    `{"modules":["AAECAw=="],"digest":[300]}`,
			wantErr: "byte 300 out of range",
		},
		{
			name:    "not json",
			give:    `modules: []`,
			wantErr: "parse package artifact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			artifact, err := ParseArtifact([]byte(tt.give))

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, []string{"AAECAw=="}, artifact.Modules)
			require.Equal(t, tt.wantDigest, []byte(artifact.Digest))
		})
	}
}

func Test_objectTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		give          string
		wantName      string
		wantQualified string
	}{
		{
			name:          "plain type",
			give:          testPackageID + "::gateway::Gateway",
			wantName:      "Gateway",
			wantQualified: "gateway::Gateway",
		},
		{
			name:          "generic type",
			give:          "0x2::coin::TreasuryCap<0xdead::tok::TOK>",
			wantName:      "TreasuryCap",
			wantQualified: "coin::TreasuryCap",
		},
		{name: "not a type tag", give: "justtext", wantName: "", wantQualified: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, qualified := objectTypeName(tt.give)
			require.Equal(t, tt.wantName, name)
			require.Equal(t, tt.wantQualified, qualified)
		})
	}
}

func Test_createdObjects(t *testing.T) {
	t.Parallel()

	resp := models.SuiTransactionBlockResponse{
		ObjectChanges: []models.ObjectChange{
			{Type: "published", PackageId: testPackageID},
			{Type: "created", ObjectType: testPackageID + "::gateway::Gateway", ObjectId: testGateway},
			{Type: "created", ObjectType: testPackageID + "::gateway::OwnerCap", ObjectId: testOwnerCap},
			{Type: "created", ObjectType: testPackageID + "::operators::OwnerCap", ObjectId: testOperatorsObj},
			{Type: "created", ObjectType: "0x2::package::UpgradeCap", ObjectId: testCollectorCap},
			{Type: "created", ObjectType: "malformed", ObjectId: "0x1"},
			{Type: "mutated", ObjectType: "0x2::coin::Coin<0x2::sui::SUI>", ObjectId: "0x2"},
		},
	}

	objects := createdObjects(resp)
	require.Equal(t, map[string]string{
		"Gateway":             testGateway,
		"OwnerCap":            testOwnerCap,
		"operators::OwnerCap": testOperatorsObj,
		"UpgradeCap":          testCollectorCap,
	}, objects)

	pkg, err := publishedPackage(resp)
	require.NoError(t, err)
	require.Equal(t, testPackageID, pkg)

	_, err = publishedPackage(models.SuiTransactionBlockResponse{})
	require.ErrorContains(t, err, "no published package")
}

func Test_Deployer_Upload(t *testing.T) {
	t.Parallel()

	var unsupported *sdkerrors.UnsupportedOperationError
	_, err := testDeployer(t).Upload(context.Background(), []byte{0x01})
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "sui", unsupported.Family)
	require.Equal(t, "upload", unsupported.Operation)
}

func Test_Deployer_Deploy_invalidArtifact(t *testing.T) {
	t.Parallel()

	_, err := testDeployer(t).Deploy(context.Background(), sdk.DeployParams{Code: []byte(`{"modules":[]}`)})
	require.ErrorContains(t, err, "no compiled modules")
}

func Test_Deployer_UpgradePackage_validation(t *testing.T) {
	t.Parallel()

	deployer := testDeployer(t)
	artifact := `{"modules":["AAECAw=="],"dependencies":["0x1"],"digest":[1,2,3]}`

	tests := []struct {
		name    string
		params  sdk.UpgradeParams
		wantErr string
	}{
		{
			name:    "bad artifact",
			params:  sdk.UpgradeParams{NewCode: []byte(`{}`)},
			wantErr: "no compiled modules",
		},
		{
			name:    "missing digest",
			params:  sdk.UpgradeParams{NewCode: []byte(`{"modules":["AAECAw=="]}`)},
			wantErr: "no digest",
		},
		{
			name: "bad package address",
			params: sdk.UpgradeParams{
				NewCode:    []byte(artifact),
				Address:    "bogus",
				Capability: testOwnerCap,
			},
			wantErr: "invalid address: bogus",
		},
		{
			name: "missing upgrade cap",
			params: sdk.UpgradeParams{
				NewCode: []byte(artifact),
				Address: testPackageID,
			},
			wantErr: "invalid address",
		},
		{
			name: "module not base64",
			params: sdk.UpgradeParams{
				NewCode:    []byte(`{"modules":["@@"],"digest":[1]}`),
				Address:    testPackageID,
				Capability: testOwnerCap,
			},
			wantErr: "decode module 0",
		},
		{
			name: "bad dependency",
			params: sdk.UpgradeParams{
				NewCode:    []byte(`{"modules":["AAECAw=="],"dependencies":["nope"],"digest":[1]}`),
				Address:    testPackageID,
				Capability: testOwnerCap,
			},
			wantErr: "invalid address: nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := deployer.UpgradePackage(context.Background(), tt.params)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
