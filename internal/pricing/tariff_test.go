package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogVehicles(t *testing.T) {
	catalog := DefaultCatalog()

	for _, slug := range []string{"volkswagen-polo", "volkswagen-crafter", "peugeot-boxer-iii"} {
		tariff, err := catalog.Lookup(slug)
		require.NoError(t, err, slug)
		assert.Greater(t, tariff.BasePriceDay, 0.0, slug)
		assert.NotNil(t, tariff.InsuranceCost, slug)
	}

	_, err := catalog.Lookup("renault-clio")
	var notFound *TariffNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestVansShareTheSameTariff(t *testing.T) {
	catalog := DefaultCatalog()
	crafter, err := catalog.Lookup("volkswagen-crafter")
	require.NoError(t, err)
	boxer, err := catalog.Lookup("peugeot-boxer-iii")
	require.NoError(t, err)

	assert.Equal(t, crafter.BasePriceDay, boxer.BasePriceDay)
	assert.Equal(t, crafter.SameDay, boxer.SameDay)
	assert.Equal(t, crafter.MultiDay, boxer.MultiDay)
}

func TestPackageTypeReduction(t *testing.T) {
	assert.Equal(t, ReductionNone, PackageStandard24H.Reduction())
	assert.Equal(t, Reduction4H, PackageVan4H.Reduction())
	assert.Equal(t, Reduction10H, PackageVan10H.Reduction())
}

func TestInsuranceSteps(t *testing.T) {
	t.Run("car", func(t *testing.T) {
		assert.Equal(t, 15.0, carInsurance(1, ReductionNone))
		assert.Equal(t, 105.0, carInsurance(7, ReductionNone))
		assert.Equal(t, 435.0, carInsurance(29, ReductionNone))
		assert.Equal(t, 240.0, carInsurance(30, ReductionNone))
	})

	t.Run("van", func(t *testing.T) {
		assert.Equal(t, 10.0, vanInsurance(1, Reduction4H))
		assert.Equal(t, 20.0, vanInsurance(1, Reduction10H))
		assert.Equal(t, 20.0, vanInsurance(1, ReductionNone))
		assert.Equal(t, 60.0, vanInsurance(3, ReductionNone))
		assert.Equal(t, 60.0, vanInsurance(4, ReductionNone))
		assert.Equal(t, 105.0, vanInsurance(7, ReductionNone))
		assert.Equal(t, 80.0, vanInsurance(8, ReductionNone))
	})
}
