package taxonomy

var defaultTaxonomy = New(DefaultGroups())

// Default returns the shared taxonomy of Chrome main-thread event names.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// DefaultGroups returns the built-in category groups, Other excluded.
func DefaultGroups() []Group {
	return []Group{
		{
			ID:    ParseHTML,
			Label: "Parse HTML & CSS",
			TraceEventNames: []string{
				"ParseHTML",
				"ParseAuthorStyleSheet",
			},
		},
		{
			ID:    StyleLayout,
			Label: "Style & Layout",
			TraceEventNames: []string{
				"ScheduleStyleRecalculation",
				"RecalculateStyles",
				"UpdateLayoutTree",
				"InvalidateLayout",
				"Layout",
			},
		},
		{
			ID:    PaintCompositeRender,
			Label: "Rendering",
			TraceEventNames: []string{
				"Animation",
				"RequestMainThreadFrame",
				"ActivateLayerTree",
				"DrawFrame",
				"HitTest",
				"PaintSetup",
				"Paint",
				"PaintImage",
				"Rasterize",
				"RasterTask",
				"ScrollLayer",
				"UpdateLayer",
				"UpdateLayerTree",
				"CompositeLayers",
			},
		},
		{
			ID:    ScriptParseCompile,
			Label: "Script Parsing & Compilation",
			TraceEventNames: []string{
				"v8.compile",
				"v8.compileModule",
				"v8.parseOnBackground",
			},
		},
		{
			ID:    ScriptEvaluation,
			Label: "Script Evaluation",
			TraceEventNames: []string{
				"EventDispatch",
				"EvaluateScript",
				"v8.evaluateModule",
				"FunctionCall",
				"TimerFire",
				"FireIdleCallback",
				"FireAnimationFrame",
				"RunMicrotasks",
				"V8.Execute",
			},
		},
		{
			ID:    GarbageCollection,
			Label: "Garbage Collection",
			TraceEventNames: []string{
				"GCEvent",
				"MinorGC",
				"MajorGC",
				"ThreadState::performIdleLazySweep",
				"ThreadState::completeSweep",
				"BlinkGCMarking",
				"BlinkGC.AtomicPhase",
				"V8.GCScavenger",
				"V8.GCFinalizeMC",
				"V8.GCIncrementalMarking",
			},
		},
	}
}
