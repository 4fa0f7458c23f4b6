package parameter

// Genetic Algorithm - OneMax Defaults
const (
	// GAPoolSize is the number of individuals in each population
	GAPoolSize = 10

	// GAGenomeLength is the bit count of a OneMax genome
	GAGenomeLength = 10

	// GAGenerations is the number of generations per run
	GAGenerations = 25

	// GAPerturbationRate is per-gene mutation probability (0.0-1.0)
	GAPerturbationRate = 0.1

	// GASelectionRate is the fraction of the population kept each generation
	GASelectionRate = 0.5

	// GAReportEvery prints every generation
	GAReportEvery = 1
)

// Genetic Algorithm - TSP Defaults
const (
	// TSPCityCount is the number of random cities when none are configured
	TSPCityCount = 100

	// TSPPoolSize is the number of tours in each population
	TSPPoolSize = 30

	// TSPGenerations is the number of generations per run
	TSPGenerations = 5000

	// TSPPerturbationRate is per-tour segment reversal probability (0.0-1.0)
	TSPPerturbationRate = 0.3

	// TSPSelectionRate is the fraction of tours kept each generation
	TSPSelectionRate = 0.5

	// TSPReportEvery redraws and logs on every Nth generation
	TSPReportEvery = 100

	// TSPFirstFrame is the generation of the first drawn frame; later frames follow every TSPReportEvery
	TSPFirstFrame = 1
)

// Rendering
const (
	// RenderPlotSize is the edge length of written tour plots, in inches
	RenderPlotSize = 4

	// RenderGridColumns is the number of tours per row in the terminal view
	RenderGridColumns = 5

	// RenderMaxTours caps the tours drawn in the terminal view
	RenderMaxTours = 10
)

// Logging
const (
	// LogDir holds debug log files
	LogDir = "logs"
)
