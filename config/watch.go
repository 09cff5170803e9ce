package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watch reloads the config files on change and decodes them into instance.
// Only the first bound instance is watched.
func (c *Config) watch(instance any) error {
	var err error
	c.watchOnce.Do(func() {
		var w *fsnotify.Watcher
		w, err = fsnotify.NewWatcher()
		if err != nil {
			err = fmt.Errorf("failed to create config watcher: %w", err)
			return
		}
		// Editors replace files, so watch the directory.
		if err = w.Add(c.opts.BasePath); err != nil {
			_ = w.Close()
			err = fmt.Errorf("failed to watch %s: %w", c.opts.BasePath, err)
			return
		}
		c.watcher = w
		c.watchDone = make(chan struct{})
		go c.watchLoop(instance)
	})
	return err
}

func (c *Config) watchLoop(instance any) {
	defer close(c.watchDone)
	for {
		select {
		case e, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !c.isConfigFile(e.Name) || !e.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			if err := c.reload(instance); err != nil {
				fmt.Fprintf(os.Stderr, "config watch error: %v\n", err)
				continue
			}
			if c.opts.OnChange != nil {
				c.opts.OnChange(e)
			}
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (c *Config) reload(instance any) error {
	files := configFilePaths(c.opts)
	v, err := readFiles(files, c.opts.FileType)
	if err != nil {
		return err
	}

	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()
	c.instance = v
	c.files = files
	return c.decode(instance)
}

func (c *Config) isConfigFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, c.opts.FileName+".") && strings.HasSuffix(name, "."+c.opts.FileType)
}

// Close stops watching. It is safe to call on an unwatched config.
func (c *Config) Close() error {
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	<-c.watchDone
	return err
}
