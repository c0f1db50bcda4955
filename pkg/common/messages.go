package common

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Global variable to control debug output
var VerboseMode bool = false

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetLogOutput redirects every log message to w.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Logger exposes the underlying logrus logger for callers that need fields.
func Logger() *logrus.Logger {
	return logger
}

// Error messages
const (
	ErrFailedToReadImage         = "failed to read disc image"
	ErrFailedToWriteImage        = "failed to write disc image"
	ErrFailedToDecodeRegion      = "failed to decode sector region"
	ErrFailedToEncodeRegion      = "failed to encode sector region"
	ErrFailedToReadCardNames     = "failed to read card names"
	ErrFailedToReadDuelists      = "failed to read duelist records"
	ErrFailedToWriteDuelists     = "failed to write duelist records"
	ErrFailedToLoadLayout        = "failed to load layout configuration"
	ErrFailedToCreateOutputDir   = "failed to create output directory"
	ErrFailedToCreateOutputFile  = "failed to create output file"
	ErrFailedToParseCardList     = "failed to parse card list table"
	ErrFailedToApplyOverlay      = "failed to apply duelist overlay"
	ErrFailedToWriteManifest     = "failed to write duelist manifest"
	ErrFailedToLocateISOFile     = "failed to locate file in ISO9660 tree"
	ErrInvalidCardListDetected   = "card list weights do not add up to the required total"
	ErrAmbiguousDuelistDirectory = "more than one directory matches duelist id"
)

// Info messages
const (
	InfoImageLoaded       = "Loaded disc image %s (%s)"
	InfoCardNamesRead     = "Read %d card names"
	InfoDuelistsRead      = "Read %d duelists"
	InfoDuelistsWritten   = "Wrote %d duelists"
	InfoDuelistDumped     = "Dumped duelist %d (%s) to %s"
	InfoTablesDumped      = "Dumped %d card list tables to %s"
	InfoOverlayApplied    = "Applied %s to duelist %d (%s)"
	InfoOverlaySummary    = "Applied %d table overrides from %s"
	InfoManifestWritten   = "Wrote duelist manifest: %s"
	InfoImageSaved        = "Saved disc image %s (%s)"
	InfoLayoutLoaded      = "Loaded layout configuration from %s"
	InfoISOFileLocated    = "Located %s at LBA %d (MSF %s), %s"
	InfoPassthroughParity = "Passthrough output matches input byte for byte"
)

// Debug messages
const (
	DebugSectorDecoded     = "Sector %d: payload copied to offset 0x%X"
	DebugSectorEncoded     = "Sector %d: payload written, EDC=0x%08X"
	DebugNameResolved      = "Name %d: relative 0x%04X -> absolute 0x%X %q"
	DebugDuelistOffsets    = "Duelist %d: base=0x%X deck=0x%X sa-pow=0x%X bcd=0x%X sa-tec=0x%X"
	DebugCardListRow       = "  %d: %d"
	DebugOverlayMissing    = "No %s for duelist %d, keeping decoded table"
	DebugDirectoryResolved = "Duelist %d resolved to directory %s"
	DebugDirectoryMissing  = "No directory for duelist %d under %s"
	DebugRegionDecoded     = "Decoded region %s: %d sectors, %s payload"
	DebugRegionEncoded     = "Encoded region %s: %d sectors"
	DebugCardNamesDecoded  = "Decoded %d card names"
)

// Warning messages
const (
	WarnPassthroughMismatch = "Passthrough output differs from input in %d sectors"
	WarnRegionMismatch      = "ISO9660 entry %s does not match configured region %s: %v"
	WarnUnknownDirectory    = "Ignoring directory %s: no duelist with that id"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		logger.Infof(message, args...)
	} else {
		logger.Info(message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		logger.Warnf(message, args...)
	} else {
		logger.Warn(message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		logger.Errorf(message, args...)
	} else {
		logger.Error(message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		logger.Debugf(message, args...)
	} else {
		logger.Debug(message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
