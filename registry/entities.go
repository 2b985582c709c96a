package registry

// All entity types that make up a dataset dump, in dump order.
var All = []EntityType{
	Annotation,
	AnnotationShape,
	AnnotationFile,
	Tomogram,
	TiltSeries,
	Dataset,
	Run,
	Alignment,
}

// Commonly shared attribute definitions.
var (
	attrID = Attribute{Name: "id", Kind: Integer, Description: "Numeric identifier (May change!)"}

	attrDepositionID = Attribute{Name: "deposition_id", Kind: Integer,
		Description: "Identifier of the deposition this entity was submitted with"}
	attrRunID = Attribute{Name: "run_id", Kind: Integer,
		Description: "Identifier of the run this entity belongs to"}
	attrDepositionDate = Attribute{Name: "deposition_date", Kind: Date,
		Description: "Date when the entity was first received"}
	attrReleaseDate = Attribute{Name: "release_date", Kind: Date,
		Description: "Date when the entity was made public"}
	attrLastModifiedDate = Attribute{Name: "last_modified_date", Kind: Date,
		Description: "Date when the entity was last modified"}
)

var Dataset = EntityType{
	Name:        "dataset",
	GQLType:     "Dataset",
	RootField:   "datasets",
	Description: "An electron tomography dataset, a collection of runs sharing sample and acquisition setup.",
	Attributes: []Attribute{
		attrID,
		{Name: "deposition_id", Kind: Integer, Description: "Identifier of the deposition the dataset is part of"},
		{Name: "title", Kind: Text, Description: "Title of a CryoET dataset"},
		{Name: "description", Kind: Text, Description: "A short description of a CryoET dataset, similar to an abstract for a journal article or dataset"},
		{Name: "organism_name", Kind: Text, Description: "Name of the organism from which a biological sample used in a CryoET study is derived from, e.g. homo sapiens"},
		{Name: "organism_taxid", Kind: Integer, Description: "NCBI taxonomy identifier for the organism, e.g. 9606"},
		{Name: "tissue_name", Kind: Text, Description: "Name of the tissue from which a biological sample used in a CryoET study is derived from"},
		{Name: "tissue_id", Kind: Text, Description: "UBERON identifier for the tissue"},
		{Name: "cell_name", Kind: Text, Description: "Name of the cell type from which a biological sample used in a CryoET study is derived from"},
		{Name: "cell_type_id", Kind: Text, Description: "Cell Ontology identifier for the cell type"},
		{Name: "cell_strain_name", Kind: Text, Description: "Cell line or strain for the sample"},
		{Name: "cell_strain_id", Kind: Text, Description: "Link to more information about the cell strain"},
		{Name: "sample_type", Kind: Text, Description: "Type of sample imaged in a CryoET study"},
		{Name: "sample_preparation", Kind: Text, Description: "Describes how the sample was prepared"},
		{Name: "grid_preparation", Kind: Text, Description: "Describes Cryo-ET grid preparation"},
		{Name: "other_setup", Kind: Text, Description: "Describes other setup not covered by sample preparation or grid preparation that may make this dataset unique in the same publication"},
		{Name: "key_photo_url", Kind: Text, Description: "URL for the dataset preview image"},
		{Name: "key_photo_thumbnail_url", Kind: Text, Description: "URL for the thumbnail of preview image"},
		{Name: "cell_component_name", Kind: Text, Description: "Name of the cellular component"},
		{Name: "cell_component_id", Kind: Text, Description: "If the dataset focuses on a specific part of a cell, the subset is included here"},
		attrDepositionDate,
		attrReleaseDate,
		attrLastModifiedDate,
		{Name: "publications", Kind: Text, Description: "Comma-separated list of DOIs for publications associated with the dataset"},
		{Name: "related_database_entries", Kind: Text, Description: "If a CryoET dataset is also deposited into another database, enter the database identifier here (e.g. EMPIAR-11445)"},
		{Name: "s3_prefix", Kind: Text, Description: "Path to a directory containing data for this dataset as an S3 url"},
		{Name: "https_prefix", Kind: Text, Description: "Path to a directory containing data for this dataset as an HTTPS url"},
		{Name: "file_size", Kind: Float, Description: "Size of the dataset in bytes"},
		{Name: "authors", Kind: Relationship, Description: "Authors of the dataset"},
		{Name: "funding_sources", Kind: Relationship, Description: "Funding sources of the dataset"},
		{Name: "runs", Kind: Relationship, Description: "Runs of the dataset"},
		{Name: "deposition", Kind: Relationship},
	},
}

var Run = EntityType{
	Name:        "run",
	GQLType:     "Run",
	RootField:   "runs",
	Description: "A single physical location on a cryoET grid where a tilt series was acquired.",
	Attributes: []Attribute{
		attrID,
		{Name: "dataset_id", Kind: Integer, Description: "Identifier of the dataset this run belongs to"},
		{Name: "name", Kind: Text, Description: "Short name for this experiment run"},
		{Name: "s3_prefix", Kind: Text, Description: "The S3 public bucket path where this run is contained"},
		{Name: "https_prefix", Kind: Text, Description: "The HTTPS directory path where this run is contained"},
		{Name: "dataset", Kind: Relationship, Description: "The dataset this run belongs to"},
		{Name: "tomogram_voxel_spacings", Kind: Relationship},
		{Name: "tiltseries", Kind: Relationship},
	},
}

var Tomogram = EntityType{
	Name:        "tomogram",
	GQLType:     "Tomogram",
	RootField:   "tomograms",
	Description: "Metadata describing a tomogram.",
	Attributes: []Attribute{
		attrID,
		{Name: "alignment_id", Kind: Integer, Description: "Identifier of the alignment used for reconstruction"},
		attrDepositionID,
		attrRunID,
		{Name: "tomogram_voxel_spacing_id", Kind: Integer, Description: "Identifier of the voxel spacing this tomogram is stored under"},
		{Name: "name", Kind: Text, Description: "Short name for this tomogram"},
		{Name: "size_x", Kind: Integer, Description: "Number of pixels in the 3D data fast axis"},
		{Name: "size_y", Kind: Integer, Description: "Number of pixels in the 3D data medium axis"},
		{Name: "size_z", Kind: Integer, Description: "Number of pixels in the 3D data slow axis. This is the image projection direction at zero stage tilt"},
		{Name: "voxel_spacing", Kind: Float, Description: "Voxel spacing equal in all three axes in angstroms"},
		{Name: "fiducial_alignment_status", Kind: Text, Description: "Whether the tomographic alignment was computed based on fiducial markers."},
		{Name: "reconstruction_method", Kind: Text, Description: "Describe reconstruction method (WBP, SART, SIRT)"},
		{Name: "processing", Kind: Text, Description: "Describe additional processing used to derive the tomogram"},
		{Name: "tomogram_version", Kind: Float, Description: "Version of tomogram"},
		{Name: "processing_software", Kind: Text, Description: "Processing software used to derive the tomogram"},
		{Name: "reconstruction_software", Kind: Text, Description: "Name of software used for reconstruction"},
		{Name: "is_portal_standard", Kind: Boolean, Description: "Whether this tomogram adheres to portal standards"},
		{Name: "is_author_submitted", Kind: Boolean, Description: "Whether this tomogram was submitted by the author of the dataset it belongs to."},
		{Name: "is_visualization_default", Kind: Boolean, Description: "Data curator's subjective choice of default tomogram to display in visualization for a run"},
		{Name: "s3_omezarr_dir", Kind: Text, Description: "S3 path to this tomogram in multiscale OME-Zarr format"},
		{Name: "https_omezarr_dir", Kind: Text, Description: "HTTPS path to this tomogram in multiscale OME-Zarr format"},
		{Name: "file_size_omezarr", Kind: Float, Description: "Size of the OME-Zarr directory in bytes"},
		{Name: "s3_mrc_file", Kind: Text, Description: "S3 path to this tomogram in MRC format (no scaling)"},
		{Name: "https_mrc_file", Kind: Text, Description: "HTTPS path to this tomogram in MRC format (no scaling)"},
		{Name: "file_size_mrc", Kind: Float, Description: "Size of the MRC file in bytes"},
		{Name: "scale0_dimensions", Kind: Text, Description: "comma separated x,y,z dimensions of the unscaled tomogram"},
		{Name: "scale1_dimensions", Kind: Text, Description: "comma separated x,y,z dimensions of the scale1 tomogram"},
		{Name: "scale2_dimensions", Kind: Text, Description: "comma separated x,y,z dimensions of the scale2 tomogram"},
		{Name: "ctf_corrected", Kind: Boolean, Description: "Whether this tomogram is CTF corrected"},
		{Name: "offset_x", Kind: Integer, Description: "x offset data relative to the canonical tomogram in pixels"},
		{Name: "offset_y", Kind: Integer, Description: "y offset data relative to the canonical tomogram in pixels"},
		{Name: "offset_z", Kind: Integer, Description: "z offset data relative to the canonical tomogram in pixels"},
		{Name: "key_photo_url", Kind: Text, Description: "URL for the key photo"},
		{Name: "key_photo_thumbnail_url", Kind: Text, Description: "URL for the thumbnail of key photo"},
		{Name: "neuroglancer_config", Kind: Text, Description: "the compact json of neuroglancer config"},
		{Name: "publications", Kind: Text, Description: "Comma-separated list of DOIs for publications associated with the tomogram"},
		{Name: "related_database_entries", Kind: Text, Description: "If a CryoET tomogram is also deposited into another database, enter the database identifier here (e.g. EMPIAR-11445)"},
		attrDepositionDate,
		attrReleaseDate,
		attrLastModifiedDate,
		{Name: "run", Kind: Relationship, Description: "The run this tomogram belongs to"},
		{Name: "tomogram_voxel_spacing", Kind: Relationship},
		{Name: "alignment", Kind: Relationship},
		{Name: "authors", Kind: Relationship},
	},
}

var TiltSeries = EntityType{
	Name:        "tiltseries",
	GQLType:     "Tiltseries",
	RootField:   "tiltseries",
	Description: "Metadata about how a tilt series was acquired.",
	Attributes: []Attribute{
		attrID,
		attrRunID,
		attrDepositionID,
		{Name: "s3_omezarr_dir", Kind: Text, Description: "S3 path to this tiltseries in multiscale OME-Zarr format"},
		{Name: "https_omezarr_dir", Kind: Text, Description: "HTTPS path to this tiltseries in multiscale OME-Zarr format"},
		{Name: "file_size_omezarr", Kind: Float, Description: "Size of the OME-Zarr directory in bytes"},
		{Name: "s3_mrc_file", Kind: Text, Description: "S3 path to this tiltseries in MRC format (no scaling)"},
		{Name: "https_mrc_file", Kind: Text, Description: "HTTPS path to this tiltseries in MRC format (no scaling)"},
		{Name: "file_size_mrc", Kind: Float, Description: "Size of the MRC file in bytes"},
		{Name: "s3_angle_list", Kind: Text, Description: "S3 path to the angle list file for this tiltseries"},
		{Name: "https_angle_list", Kind: Text, Description: "HTTPS path to the angle list file for this tiltseries"},
		{Name: "s3_gain_file", Kind: Text, Description: "S3 path to the gain file for this tiltseries"},
		{Name: "https_gain_file", Kind: Text, Description: "HTTPS path to the gain file for this tiltseries"},
		{Name: "acceleration_voltage", Kind: Float, Description: "Electron Microscope Accelerator voltage in volts"},
		{Name: "spherical_aberration_constant", Kind: Float, Description: "Spherical Aberration Constant of the objective lens in millimeters"},
		{Name: "microscope_manufacturer", Kind: Text, Description: "Name of the microscope manufacturer"},
		{Name: "microscope_model", Kind: Text, Description: "Microscope model name"},
		{Name: "microscope_energy_filter", Kind: Text, Description: "Energy filter setup used"},
		{Name: "microscope_phase_plate", Kind: Text, Description: "Phase plate configuration"},
		{Name: "microscope_image_corrector", Kind: Text, Description: "Image corrector setup"},
		{Name: "microscope_additional_info", Kind: Text, Description: "Other microscope optical setup information, in addition to energy filter, phase plate and image corrector"},
		{Name: "camera_manufacturer", Kind: Text, Description: "Name of the camera manufacturer"},
		{Name: "camera_model", Kind: Text, Description: "Camera model name"},
		{Name: "tilt_min", Kind: Float, Description: "Minimal tilt angle in degrees"},
		{Name: "tilt_max", Kind: Float, Description: "Maximal tilt angle in degrees"},
		{Name: "tilt_range", Kind: Float, Description: "Total tilt range in degrees"},
		{Name: "tilt_step", Kind: Float, Description: "Tilt step in degrees"},
		{Name: "tilting_scheme", Kind: Text, Description: "The order of stage tilting during acquisition of the data"},
		{Name: "tilt_axis", Kind: Float, Description: "Rotation angle in degrees"},
		{Name: "total_flux", Kind: Float, Description: "Number of Electrons reaching the specimen in a square Angstrom area for the entire tilt series"},
		{Name: "data_acquisition_software", Kind: Text, Description: "Software used to collect data"},
		{Name: "related_empiar_entry", Kind: Text, Description: "If a tilt series is deposited into EMPIAR, enter the EMPIAR dataset identifier"},
		{Name: "binning_from_frames", Kind: Float, Description: "Describes the binning factor from frames to tilt series file"},
		{Name: "tilt_series_quality", Kind: Integer, Description: "Author assessment of tilt series quality within the dataset (1-5, 5 is best)"},
		{Name: "is_aligned", Kind: Boolean, Description: "Whether this tilt series is aligned"},
		{Name: "pixel_spacing", Kind: Float, Description: "Pixel spacing for the tilt series"},
		{Name: "aligned_tiltseries_binning", Kind: Float},
		{Name: "frames_count", Kind: Integer, Description: "Number of frames associated with this tiltseries"},
		attrDepositionDate,
		attrReleaseDate,
		attrLastModifiedDate,
		{Name: "run", Kind: Relationship, Description: "The run this tilt series belongs to"},
		{Name: "alignments", Kind: Relationship},
	},
}

var Alignment = EntityType{
	Name:        "alignment",
	GQLType:     "Alignment",
	RootField:   "alignments",
	Description: "Tiltseries alignment.",
	Attributes: []Attribute{
		attrID,
		attrDepositionID,
		{Name: "tiltseries_id", Kind: Integer, Description: "Identifier of the tilt series this alignment was computed for"},
		attrRunID,
		{Name: "alignment_type", Kind: Text, Description: "Whether this a LOCAL or GLOBAL alignment"},
		{Name: "alignment_method", Kind: Text, Description: "The alignment method type"},
		{Name: "volume_x_dimension", Kind: Float, Description: "X dimension of the reconstruction volume in angstrom"},
		{Name: "volume_y_dimension", Kind: Float, Description: "Y dimension of the reconstruction volume in angstrom"},
		{Name: "volume_z_dimension", Kind: Float, Description: "Z dimension of the reconstruction volume in angstrom"},
		{Name: "volume_x_offset", Kind: Float, Description: "X shift of the reconstruction volume in angstrom"},
		{Name: "volume_y_offset", Kind: Float, Description: "Y shift of the reconstruction volume in angstrom"},
		{Name: "volume_z_offset", Kind: Float, Description: "Z shift of the reconstruction volume in angstrom"},
		{Name: "x_rotation_offset", Kind: Float, Description: "Additional X rotation of the reconstruction volume in degrees"},
		{Name: "tilt_offset", Kind: Float, Description: "Tilt offset relative to tilt series metadata in degrees"},
		{Name: "affine_transformation_matrix", Kind: Text, Description: "A placeholder for the affine transformation matrix"},
		{Name: "s3_alignment_metadata", Kind: Text, Description: "S3 path to the metadata file for this alignment"},
		{Name: "https_alignment_metadata", Kind: Text, Description: "HTTPS url to the metadata file for this alignment"},
		{Name: "is_portal_standard", Kind: Boolean},
		{Name: "run", Kind: Relationship},
		{Name: "tiltseries", Kind: Relationship},
		{Name: "tomograms", Kind: Relationship},
	},
}

var Annotation = EntityType{
	Name:        "annotation",
	GQLType:     "Annotation",
	RootField:   "annotations",
	Description: "Metadata about an annotation for a run.",
	Attributes: []Attribute{
		attrID,
		attrRunID,
		attrDepositionID,
		{Name: "s3_metadata_path", Kind: Text, Description: "S3 path for the metadata json file for this annotation"},
		{Name: "https_metadata_path", Kind: Text, Description: "HTTPS path for the metadata json file for this annotation"},
		{Name: "annotation_publication", Kind: Text, Description: "List of publication IDs (EMPIAR, EMDB, DOI) that describe this annotation method. Comma separated."},
		{Name: "annotation_method", Kind: Text, Description: "Describe how the annotation is made (e.g. Manual, crYoLO, Positive Unlabeled Learning, template matching)"},
		{Name: "ground_truth_status", Kind: Boolean, Description: "Whether an annotation is considered ground truth, as determined by the annotator."},
		{Name: "object_id", Kind: Text, Description: "Gene Ontology Cellular Component identifier or UniProtKB accession for the annotation object."},
		{Name: "object_name", Kind: Text, Description: "Name of the object being annotated (e.g. ribosome, nuclear pore complex, actin filament, membrane)"},
		{Name: "object_description", Kind: Text, Description: "A textual description of the annotation object, can be a longer description to include additional information not covered by the Annotation object name and state."},
		{Name: "object_state", Kind: Text, Description: "Molecule state annotated (e.g. open, closed)"},
		{Name: "object_count", Kind: Integer, Description: "Number of objects identified"},
		{Name: "confidence_precision", Kind: Float, Description: "Describe the confidence level of the annotation. Precision is defined as the % of annotation objects being true positive"},
		{Name: "confidence_recall", Kind: Float, Description: "Describe the confidence level of the annotation. Recall is defined as the % of true positives being annotated correctly"},
		{Name: "ground_truth_used", Kind: Text, Description: "Annotation filename used as ground truth for precision and recall"},
		{Name: "annotation_software", Kind: Text, Description: "Software used for generating this annotation"},
		{Name: "is_curator_recommended", Kind: Boolean, Description: "This annotation is recommended by the curator to be preferred for this object type."},
		{Name: "method_type", Kind: Text, Description: "Classification of the annotation method based on supervision."},
		attrDepositionDate,
		attrReleaseDate,
		attrLastModifiedDate,
		{Name: "run", Kind: Relationship},
		{Name: "annotation_shapes", Kind: Relationship},
		{Name: "authors", Kind: Relationship},
		{Name: "method_links", Kind: Relationship},
	},
}

var AnnotationShape = EntityType{
	Name:        "annotationshape",
	GQLType:     "AnnotationShape",
	RootField:   "annotationShapes",
	Description: "Shapes associated with an annotation.",
	Attributes: []Attribute{
		attrID,
		{Name: "annotation_id", Kind: Integer, Description: "Identifier of the annotation this shape belongs to"},
		{Name: "shape_type", Kind: Text, Description: "The shape of the annotation (SegmentationMask, OrientedPoint, Point, InstanceSegmentation, Mesh)"},
		{Name: "annotation", Kind: Relationship},
		{Name: "annotation_files", Kind: Relationship},
	},
}

var AnnotationFile = EntityType{
	Name:        "annotationfile",
	GQLType:     "AnnotationFile",
	RootField:   "annotationFiles",
	Description: "Files associated with an annotation.",
	Attributes: []Attribute{
		attrID,
		{Name: "alignment_id", Kind: Integer, Description: "Identifier of the alignment the annotation file refers to"},
		{Name: "annotation_shape_id", Kind: Integer, Description: "Identifier of the annotation shape this file belongs to"},
		{Name: "tomogram_voxel_spacing_id", Kind: Integer, Description: "Identifier of the voxel spacing this file is stored under"},
		{Name: "format", Kind: Text, Description: "File format for this file"},
		{Name: "s3_path", Kind: Text, Description: "s3 path of the annotation file"},
		{Name: "https_path", Kind: Text, Description: "HTTPS path for this annotation file"},
		{Name: "is_visualization_default", Kind: Boolean, Description: "Data curator's subjective choice of default annotation to display in visualization for an object"},
		{Name: "source", Kind: Text},
		{Name: "annotation_shape", Kind: Relationship},
		{Name: "tomogram_voxel_spacing", Kind: Relationship},
		{Name: "alignment", Kind: Relationship},
	},
}
