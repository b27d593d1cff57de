package printer

// ServerPrinterOptions configures a ServerPrinter.
type ServerPrinterOptions struct {
	showCategory bool
	spaced       bool
}

// ServerPrinterOption sets a ServerPrinterOptions field.
type ServerPrinterOption func(*ServerPrinterOptions) error

func defaultServerPrinterOptions() ServerPrinterOptions {
	return ServerPrinterOptions{
		showCategory: false,
		spaced:       false,
	}
}

// NewServerPrinterOptions applies opts over the defaults.
func NewServerPrinterOptions(opts ...ServerPrinterOption) (ServerPrinterOptions, error) {
	options := defaultServerPrinterOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return ServerPrinterOptions{}, err
		}
	}
	return options, nil
}

// WithCategory shows the server's category in place of its download count.
func WithCategory(enabled bool) ServerPrinterOption {
	return func(o *ServerPrinterOptions) error {
		o.showCategory = enabled
		return nil
	}
}

// WithSpacing prints a blank line after each entry.
func WithSpacing(enabled bool) ServerPrinterOption {
	return func(o *ServerPrinterOptions) error {
		o.spaced = enabled
		return nil
	}
}
