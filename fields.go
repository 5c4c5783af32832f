// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import "fmt"

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

// Format is the numeric format of a directory entry value.
type Format uint16

const (
	FormatNone Format = iota
	FormatByte
	FormatASCII
	FormatShort
	FormatLong
	FormatRational
	FormatSignedByte
	FormatUndefined
	FormatSignedShort
	FormatSignedLong
	FormatSignedRational
	FormatFloat
	FormatDouble

	// FormatUTF8 was added in Exif 3.0.
	FormatUTF8 Format = 129
)

// Size in bytes of each format, indexed by format.
var bytesPerFormat = [13]int{0, 1, 1, 2, 4, 8, 1, 1, 2, 4, 8, 4, 8}

var formatNames = [13]string{
	"NONE", "BYTE", "STRING", "USHORT", "ULONG", "URATIONAL", "SBYTE",
	"UNDEFINED", "SSHORT", "SLONG", "SRATIONAL", "SINGLE", "DOUBLE",
}

// BytesPerFormat returns the size in bytes of one component of format f.
// It returns 0 for FormatNone and for formats outside the known set.
func BytesPerFormat(f Format) int {
	if f == FormatUTF8 {
		return 1
	}
	if int(f) < len(bytesPerFormat) {
		return bytesPerFormat[f]
	}
	return 0
}

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	return int(f) < len(bytesPerFormat) || f == FormatUTF8
}

func (f Format) String() string {
	if f == FormatUTF8 {
		return "UTF_8"
	}
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint16(f))
}

// Namespace is the tag namespace a TagDescriptor was resolved in.
type Namespace int

const (
	// NamespacePrimary holds the TIFF, Exif and Interoperability tags.
	NamespacePrimary Namespace = iota
	// NamespaceGPS holds the tags of the GPS directory.
	NamespaceGPS
)

func (n Namespace) String() string {
	if n == NamespaceGPS {
		return "GPS"
	}
	return "Primary"
}

// Tag is the symbolic identity of a tag the decoder treats specially.
type Tag uint16

const (
	TagImageWidth          Tag = 0x0100
	TagImageLength         Tag = 0x0101
	TagMake                Tag = 0x010f
	TagModel               Tag = 0x0110
	TagOrientation         Tag = 0x0112
	TagXResolution         Tag = 0x011a
	TagYResolution         Tag = 0x011b
	TagResolutionUnit      Tag = 0x0128
	TagDateTime            Tag = 0x0132
	TagThumbnailOffset     Tag = 0x0201
	TagThumbnailLength     Tag = 0x0202
	TagExifOffset          Tag = 0x8769
	TagGPSInfo             Tag = 0x8825
	TagDateTimeOriginal    Tag = 0x9003
	TagMakerNote           Tag = 0x927c
	TagUserComment         Tag = 0x9286
	TagPixelXDimension     Tag = 0xa002
	TagPixelYDimension     Tag = 0xa003
	TagInteropOffset       Tag = 0xa005
	TagGPSProcessingMethod Tag = 0x001b
	TagGPSAreaInformation  Tag = 0x001c

	// TagUndefined marks ids missing from the registry.
	TagUndefined Tag = 0xffff
)

// TagDescriptor describes a tag id resolved in one of the namespaces.
type TagDescriptor struct {
	ID        uint16
	Tag       Tag
	Name      string
	Namespace Namespace
}

// IsUndefined reports whether the id was not found in the registry.
func (t TagDescriptor) IsUndefined() bool {
	return t.Tag == TagUndefined
}

// ResolvePrimaryTag looks up id among the primary (TIFF/Exif/Interop) tags.
// Unknown ids resolve to an undefined descriptor named after the id.
func ResolvePrimaryTag(id uint16) TagDescriptor {
	return resolveTag(id, NamespacePrimary, fieldsPrimary)
}

// ResolveGPSTag looks up id among the GPS tags.
// Unknown ids resolve to an undefined descriptor named after the id.
func ResolveGPSTag(id uint16) TagDescriptor {
	return resolveTag(id, NamespaceGPS, fieldsGPS)
}

func resolveTag(id uint16, ns Namespace, fields map[uint16]string) TagDescriptor {
	name, found := fields[id]
	if !found {
		return TagDescriptor{
			ID:        id,
			Tag:       TagUndefined,
			Name:      fmt.Sprintf("%s0x%x", UnknownPrefix, id),
			Namespace: ns,
		}
	}
	return TagDescriptor{ID: id, Tag: Tag(id), Name: name, Namespace: ns}
}

var fieldsPrimary = map[uint16]string{
	0x0001: "InteropIndex",
	0x0002: "InteropVersion",
	0x00fe: "NewSubfileType",
	0x0100: "ImageWidth",
	0x0101: "ImageLength",
	0x0102: "BitsPerSample",
	0x0103: "Compression",
	0x0106: "PhotometricInterpretation",
	0x010a: "FillOrder",
	0x010d: "DocumentName",
	0x010e: "ImageDescription",
	0x010f: "Make",
	0x0110: "Model",
	0x0111: "StripOffsets",
	0x0112: "Orientation",
	0x0115: "SamplesPerPixel",
	0x0116: "RowsPerStrip",
	0x0117: "StripByteCounts",
	0x011a: "XResolution",
	0x011b: "YResolution",
	0x011c: "PlanarConfiguration",
	0x0128: "ResolutionUnit",
	0x012d: "TransferFunction",
	0x0131: "Software",
	0x0132: "DateTime",
	0x013b: "Artist",
	0x013e: "WhitePoint",
	0x013f: "PrimaryChromaticities",
	0x0156: "TransferRange",
	0x0200: "JPEGProc",
	0x0201: "ThumbnailOffset",
	0x0202: "ThumbnailLength",
	0x0211: "YCbCrCoefficients",
	0x0212: "YCbCrSubSampling",
	0x0213: "YCbCrPositioning",
	0x0214: "ReferenceBlackWhite",
	0x1001: "RelatedImageWidth",
	0x1002: "RelatedImageLength",
	0x828d: "CFARepeatPatternDim",
	0x828f: "BatteryLevel",
	0x8298: "Copyright",
	0x829a: "ExposureTime",
	0x829d: "FNumber",
	0x83bb: "IPTC/NAA",
	0x8769: "ExifOffset",
	0x8773: "InterColorProfile",
	0x8822: "ExposureProgram",
	0x8824: "SpectralSensitivity",
	0x8825: "GPSInfo",
	0x8827: "ISOSpeedRatings",
	0x8828: "OECF",
	0x8830: "SensitivityType",
	0x8831: "StandardOutputSensitivity",
	0x8832: "RecommendedExposureIndex",
	0x8833: "ISOSpeed",
	0x8834: "ISOSpeedLatitudeyyy",
	0x8835: "ISOSpeedLatitudezzz",
	0x9000: "ExifVersion",
	0x9003: "DateTimeOriginal",
	0x9004: "DateTimeDigitized",
	0x9010: "OffsetTime",
	0x9011: "OffsetTimeOriginal",
	0x9012: "OffsetTimeDigitized",
	0x9101: "ComponentsConfiguration",
	0x9102: "CompressedBitsPerPixel",
	0x9201: "ShutterSpeedValue",
	0x9202: "ApertureValue",
	0x9203: "BrightnessValue",
	0x9204: "ExposureBiasValue",
	0x9205: "MaxApertureValue",
	0x9206: "SubjectDistance",
	0x9207: "MeteringMode",
	0x9208: "LightSource",
	0x9209: "Flash",
	0x920a: "FocalLength",
	0x920b: "FlashEnergy",
	0x920c: "SpatialFrequencyResponse",
	0x920e: "FocalPlaneXResolution",
	0x920f: "FocalPlaneYResolution",
	0x9210: "FocalPlaneResolutionUnit",
	0x9214: "SubjectArea",
	0x9215: "ExposureIndex",
	0x9217: "SensingMethod",
	0x927c: "MakerNote",
	0x9286: "UserComment",
	0x9290: "SubSecTime",
	0x9291: "SubSecTimeOriginal",
	0x9292: "SubSecTimeDigitized",
	0x9400: "Temperature",
	0x9401: "Humidity",
	0x9402: "Pressure",
	0x9403: "WaterDepth",
	0x9404: "Acceleration",
	0x9405: "CameraElevationAngle",
	0x9c9b: "XPTitle",
	0x9c9c: "XPComment",
	0x9c9d: "XPAuthor",
	0x9c9e: "XPKeywords",
	0x9c9f: "XPSubject",
	0xa000: "FlashPixVersion",
	0xa001: "ColorSpace",
	0xa002: "PixelXDimension",
	0xa003: "PixelYDimension",
	0xa004: "RelatedAudioFile",
	0xa005: "InteroperabilityOffset",
	0xa20b: "FlashEnergy",
	0xa20c: "SpatialFrequencyResponse",
	0xa20e: "FocalPlaneXResolution",
	0xa20f: "FocalPlaneYResolution",
	0xa210: "FocalPlaneResolutionUnit",
	0xa214: "SubjectLocation",
	0xa215: "ExposureIndex",
	0xa217: "SensingMethod",
	0xa300: "FileSource",
	0xa301: "SceneType",
	0xa302: "CFAPattern",
	0xa401: "CustomRendered",
	0xa402: "ExposureMode",
	0xa403: "WhiteBalance",
	0xa404: "DigitalZoomRatio",
	0xa405: "FocalLengthIn35mmFilm",
	0xa406: "SceneCaptureType",
	0xa407: "GainControl",
	0xa408: "Contrast",
	0xa409: "Saturation",
	0xa40a: "Sharpness",
	0xa40b: "DeviceSettingDescription",
	0xa40c: "SubjectDistanceRange",
	0xa420: "ImageUniqueID",
	0xa430: "CameraOwnerName",
	0xa431: "BodySerialNumber",
	0xa432: "LensSpecification",
	0xa433: "LensMake",
	0xa434: "LensModel",
	0xa435: "LensSerialNumber",
	0xa436: "ImageTitle",
	0xa437: "Photographer",
	0xa438: "ImageEditor",
	0xa439: "CameraFirmware",
	0xa43a: "RAWDevelopingSoftware",
	0xa43b: "ImageEditingSoftware",
	0xa43c: "MetadataEditingSoftware",
	0xa460: "CompositeImage",
	0xa461: "SourceImageNumberOfCompositeImage",
	0xa462: "SourceExposureTimesOfCompositeImage",
	0xa500: "Gamma",
}

var fieldsGPS = map[uint16]string{
	0x00: "GPSVersionID",
	0x01: "GPSLatitudeRef",
	0x02: "GPSLatitude",
	0x03: "GPSLongitudeRef",
	0x04: "GPSLongitude",
	0x05: "GPSAltitudeRef",
	0x06: "GPSAltitude",
	0x07: "GPSTimeStamp",
	0x08: "GPSSatelites",
	0x09: "GPSStatus",
	0x0a: "GPSMeasureMode",
	0x0b: "GPSDOP",
	0x0c: "GPSSpeedRef",
	0x0d: "GPSSpeed",
	0x0e: "GPSTrackRef",
	0x0f: "GPSTrack",
	0x10: "GPSImgDirectionRef",
	0x11: "GPSImgDirection",
	0x12: "GPSMapDatum",
	0x13: "GPSDestLatitudeRef",
	0x14: "GPSDestLatitude",
	0x15: "GPSDestLongitudeRef",
	0x16: "GPSDestLongitude",
	0x17: "GPSDestBearingRef",
	0x18: "GPSDestBearing",
	0x19: "GPSDestDistanceRef",
	0x1a: "GPSDestDistance",
	0x1b: "GPSProcessingMethod",
	0x1c: "GPSAreaInformation",
	0x1d: "GPSDateStamp",
	0x1e: "GPSDifferential",
	0x1f: "GPSHPositioningError",
}
