package models

// ArtifactKind identifies one of the two outputs produced per header
type ArtifactKind int

const (
	ArtifactGlue ArtifactKind = iota
	ArtifactMetadata
)

// String returns the string representation of the artifact kind
func (k ArtifactKind) String() string {
	switch k {
	case ArtifactGlue:
		return "glue"
	case ArtifactMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// GeneratedArtifact represents a rendered output file waiting to be written
type GeneratedArtifact struct {
	Kind       ArtifactKind // which emitter produced it
	SourcePath string       // header the artifact was generated from
	FilePath   string       // path where the artifact should be written
	Content    []byte       // rendered content
}

// GenerationSummary collects statistics for one generation run
type GenerationSummary struct {
	FilesScanned    int
	FilesGenerated  int
	FilesSkipped    int
	FilesFailed     int
	ClassesFound    int
	PropertiesFound int
	MethodsFound    int
	EnumsIgnored    int
	GeneratedFiles  []string
}

// Add folds the counts of one parsed file into the summary
func (s *GenerationSummary) Add(record *FileRecord) {
	s.ClassesFound += len(record.Classes)
	s.PropertiesFound += record.PropertyCount()
	s.MethodsFound += record.MethodCount()
	s.EnumsIgnored += record.EnumCount
}
