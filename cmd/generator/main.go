package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/klog"

	"github.com/tracie-bench/tracie/cmd/generator/options"
	"github.com/tracie-bench/tracie/pkg/generator"
)

func main() {
	klog.InitFlags(nil)

	o := options.NewOption()
	o.AddFlags(pflag.CommandLine)

	cliflag.InitFlags()
	if err := o.CheckOptionOrDie(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := Run(o); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func Run(opt *options.Option) error {
	gen, err := generator.NewGenerator(opt)
	if err != nil {
		return err
	}

	err = gen.Run()
	if err != nil {
		return err
	}

	return nil
}
