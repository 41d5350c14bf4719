package power

// ElectrolyzerYield is the hydrogen produced per MWh of electricity (kg)
const ElectrolyzerYield = 16.4

// HydrogenFromEnergy returns the tonnes of hydrogen electrolyzed from the given energy in MWh
func HydrogenFromEnergy(energyMWh float64) float64 {
	return energyMWh * ElectrolyzerYield / 1000
}
