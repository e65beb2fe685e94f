package content

// ReadText loads path using the same mmap/buffered strategy and binary
// detection as the search pipeline, and is reused by the graph
// orchestrator and symbol mode so every content-oriented component
// applies one binary-detection rule. skip is true for an empty or
// binary file, in which case text is empty.
func ReadText(path string) (text string, skip bool, err error) {
	lf, err := loadFile(path)
	if err != nil {
		return "", false, err
	}
	defer lf.release()

	if len(lf.data) == 0 {
		return "", true, nil
	}
	if isBinary(lf.data) {
		return "", true, nil
	}
	return string(lf.data), false, nil
}

// ReadLines loads path and splits it into lines using the same
// delimiter handling as the search pipeline (trailing \r stripped, no
// spurious trailing empty line). skip is true only for a binary file;
// an empty file returns zero lines so the caller can report its own
// out-of-range condition.
func ReadLines(path string) (lines []string, skip bool, err error) {
	lf, err := loadFile(path)
	if err != nil {
		return nil, false, err
	}
	defer lf.release()

	if isBinary(lf.data) {
		return nil, true, nil
	}
	return splitLines(lf.data), false, nil
}
